package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amecrec/ADIA/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken authorizes API requests.
	AccessToken string `json:"token"`

	// RefreshToken obtains new access tokens after expiry.
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 expiry of the access token.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// GenerateMaterialRequest is the payload for the material generation
// endpoint. It mirrors the domain request; validation happens in the
// generation package so every rule violation is reported at once.
type GenerateMaterialRequest struct {
	MaterialType         string `json:"material_type"          validate:"required"`
	AcademicLevel        string `json:"academic_level"`
	Grade                string `json:"grade"`
	FormativeField       string `json:"formative_field"`
	SubjectArea          string `json:"subject_area"`
	TriggerTheme         string `json:"trigger_theme"`
	ProcessDescriptor    string `json:"process_descriptor"`
	SessionCount         int    `json:"session_count"`
	SessionDuration      string `json:"session_duration"`
	WantsSupportMaterial bool   `json:"wants_support_material"`
	WantsRubric          bool   `json:"wants_rubric"`
	OutputFormat         string `json:"output_format"`
}

// toDomain converts the transport payload into a domain request.
func (r GenerateMaterialRequest) toDomain() domain.GenerationRequest {
	return domain.GenerationRequest{
		MaterialType:         domain.RequestType(r.MaterialType),
		AcademicLevel:        domain.AcademicLevel(r.AcademicLevel),
		Grade:                r.Grade,
		FormativeField:       r.FormativeField,
		SubjectArea:          r.SubjectArea,
		TriggerTheme:         r.TriggerTheme,
		ProcessDescriptor:    r.ProcessDescriptor,
		SessionCount:         r.SessionCount,
		SessionDuration:      r.SessionDuration,
		WantsSupportMaterial: r.WantsSupportMaterial,
		WantsRubric:          r.WantsRubric,
		OutputFormat:         domain.OutputFormat(r.OutputFormat),
	}
}

// GenerationWarningResponse reports one companion document that was
// requested but could not be produced.
type GenerationWarningResponse struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// BundleResponse is the transient result of a generation run. Nothing in
// it is persisted; the client commits it with an explicit save call.
type BundleResponse struct {
	Request            domain.GenerationRequest    `json:"request"`
	PrimaryDocument    string                      `json:"primary_document"`
	CompanionDocuments map[string]string           `json:"companion_documents,omitempty"`
	Warnings           []GenerationWarningResponse `json:"warnings,omitempty"`
}

// SaveBundleRequest is the payload for committing a generated bundle to
// the caller's library. Title is optional; an empty one is derived from
// the request's theme.
type SaveBundleRequest struct {
	Title  string                 `json:"title"`
	Bundle *domain.MaterialBundle `json:"bundle" validate:"required"`
}

// MaterialResponse is the full representation of one library material.
type MaterialResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	MaterialType   string    `json:"material_type"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

// MaterialSummaryResponse is the listing representation: everything but
// the body, which can be large.
type MaterialSummaryResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	MaterialType   string    `json:"material_type"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

// UpdateMaterialRequest is the payload for replacing a material's body.
type UpdateMaterialRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}

// materialToResponse converts a domain.Material to its full response form.
func materialToResponse(m *domain.Material) MaterialResponse {
	return MaterialResponse{
		ID:             m.ID.String(),
		Title:          m.Title,
		MaterialType:   string(m.MaterialType),
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
		LastModifiedAt: m.UpdatedAt,
	}
}

// materialToSummary converts a domain.Material to its listing form.
func materialToSummary(m *domain.Material) MaterialSummaryResponse {
	return MaterialSummaryResponse{
		ID:             m.ID.String(),
		Title:          m.Title,
		MaterialType:   string(m.MaterialType),
		LastModifiedAt: m.UpdatedAt,
	}
}

// bundleToResponse converts a domain bundle to its transport form.
func bundleToResponse(b *domain.MaterialBundle) BundleResponse {
	resp := BundleResponse{
		Request:         b.Request,
		PrimaryDocument: b.PrimaryDocument,
	}

	if len(b.CompanionDocuments) > 0 {
		resp.CompanionDocuments = make(map[string]string, len(b.CompanionDocuments))
		for kind, body := range b.CompanionDocuments {
			resp.CompanionDocuments[string(kind)] = body
		}
	}

	for _, w := range b.Warnings {
		resp.Warnings = append(resp.Warnings, GenerationWarningResponse{
			Kind:   string(w.Kind),
			Reason: w.Reason,
		})
	}

	return resp
}
