package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaterialType classifies a persisted library material.
type MaterialType string

// Possible material types in the library.
const (
	MaterialTypePlan     MaterialType = "plan"
	MaterialTypeRubric   MaterialType = "rubric"
	MaterialTypeActivity MaterialType = "activity"
	MaterialTypeSupport  MaterialType = "support-material"
)

// Common validation errors for Material
var (
	ErrEmptyMaterialID      = errors.New("material ID cannot be empty")
	ErrEmptyMaterialOwnerID = errors.New("material owner ID cannot be empty")
	ErrEmptyMaterialTitle   = errors.New("material title cannot be empty")
	ErrEmptyMaterialBody    = errors.New("material body cannot be empty")
	ErrInvalidMaterialType  = errors.New("invalid material type")
)

// Material represents a persisted, owned, editable educational document in
// a user's library. Only the body is mutable after creation; every other
// field is fixed when the record is saved.
type Material struct {
	ID           uuid.UUID    `json:"id"`
	OwnerID      uuid.UUID    `json:"owner_id"`
	Title        string       `json:"title"`
	MaterialType MaterialType `json:"material_type"`
	Body         string       `json:"body"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewMaterial creates a new Material owned by the given user. It generates
// a new UUID for the material ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewMaterial(
	ownerID uuid.UUID,
	title string,
	materialType MaterialType,
	body string,
) (*Material, error) {
	now := time.Now().UTC()
	material := &Material{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		MaterialType: materialType,
		Body:         body,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := material.Validate(); err != nil {
		return nil, err
	}

	return material, nil
}

// Validate checks if the Material has valid data.
// Returns an error if any field fails validation.
func (m *Material) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMaterialID
	}

	if m.OwnerID == uuid.Nil {
		return ErrEmptyMaterialOwnerID
	}

	if m.Title == "" {
		return ErrEmptyMaterialTitle
	}

	if !isValidMaterialType(m.MaterialType) {
		return ErrInvalidMaterialType
	}

	if m.Body == "" {
		return ErrEmptyMaterialBody
	}

	return nil
}

// UpdateBody replaces the material's body and bumps the UpdatedAt timestamp.
// Returns an error if the new body is empty.
func (m *Material) UpdateBody(body string) error {
	if body == "" {
		return ErrEmptyMaterialBody
	}

	m.Body = body
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// isValidMaterialType checks if the given type is a valid MaterialType.
func isValidMaterialType(t MaterialType) bool {
	switch t {
	case MaterialTypePlan, MaterialTypeRubric, MaterialTypeActivity, MaterialTypeSupport:
		return true
	default:
		return false
	}
}
