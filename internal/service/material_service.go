package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/platform/logger"
)

// Companion records are saved in this fixed order so a committed bundle
// always yields the same sequence of materials.
var companionSaveOrder = []domain.CompanionKind{
	domain.CompanionSupportMaterial,
	domain.CompanionRubric,
}

// maxDerivedTitleLength bounds titles derived from free-form prompt text.
const maxDerivedTitleLength = 80

// MaterialRepository defines the repository interface the material service
// needs. CreateMultiple must be atomic: a bundle commit either persists
// every document or none of them.
type MaterialRepository interface {
	CreateMultiple(ctx context.Context, materials []*domain.Material) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Material, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Material, error)
	UpdateBody(ctx context.Context, ownerID, id uuid.UUID, body string) (*domain.Material, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// MaterialService provides the library's write-side operations.
type MaterialService interface {
	// SaveBundle commits a generated bundle to the owner's library.
	//
	// Policy: one Material record per bundle document, the primary
	// document plus one record per companion. The records are created
	// atomically and returned in save order (primary first).
	// An explicit title overrides the one derived from the request.
	SaveBundle(
		ctx context.Context,
		ownerID uuid.UUID,
		title string,
		bundle *domain.MaterialBundle,
	) ([]*domain.Material, error)

	// GetMaterial retrieves one owned material, body included.
	GetMaterial(ctx context.Context, ownerID, id uuid.UUID) (*domain.Material, error)

	// UpdateMaterialBody replaces an owned material's body.
	UpdateMaterialBody(
		ctx context.Context,
		ownerID, id uuid.UUID,
		body string,
	) (*domain.Material, error)

	// DeleteMaterial removes an owned material.
	DeleteMaterial(ctx context.Context, ownerID, id uuid.UUID) error
}

// materialServiceImpl implements the MaterialService interface
type materialServiceImpl struct {
	repo   MaterialRepository
	logger *slog.Logger
}

// NewMaterialService creates a new MaterialService.
// It returns an error if the repository is nil.
func NewMaterialService(repo MaterialRepository, log *slog.Logger) (MaterialService, error) {
	if repo == nil {
		return nil, domain.NewValidationError("repo", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &materialServiceImpl{
		repo:   repo,
		logger: log.With(slog.String("component", "material_service")),
	}, nil
}

// SaveBundle implements MaterialService.SaveBundle
func (s *materialServiceImpl) SaveBundle(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
	bundle *domain.MaterialBundle,
) ([]*domain.Material, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("ownerID", "cannot be empty", domain.ErrValidation)
	}
	if bundle == nil || strings.TrimSpace(bundle.PrimaryDocument) == "" {
		return nil, ErrEmptyBundle
	}

	if title = strings.TrimSpace(title); title == "" {
		title = deriveTitle(bundle.Request)
	}

	primary, err := domain.NewMaterial(
		ownerID,
		title,
		bundle.Request.MaterialType.MaterialType(),
		bundle.PrimaryDocument,
	)
	if err != nil {
		// Client-supplied bundle data; surfaces as a validation failure.
		return nil, NewMaterialServiceError("save_bundle", "invalid primary material",
			fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	materials := []*domain.Material{primary}
	for _, kind := range companionSaveOrder {
		body, ok := bundle.Companion(kind)
		if !ok {
			continue
		}
		companion, err := domain.NewMaterial(
			ownerID,
			companionTitle(title, kind),
			kind.MaterialType(),
			body,
		)
		if err != nil {
			return nil, NewMaterialServiceError("save_bundle", "invalid companion material",
				fmt.Errorf("%w: %v", domain.ErrValidation, err))
		}
		materials = append(materials, companion)
	}

	if err := s.repo.CreateMultiple(ctx, materials); err != nil {
		log.Error("failed to save bundle",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("bundle saved to library",
		slog.String("owner_id", ownerID.String()),
		slog.Int("material_count", len(materials)))
	return materials, nil
}

// GetMaterial implements MaterialService.GetMaterial
func (s *materialServiceImpl) GetMaterial(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.Material, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// UpdateMaterialBody implements MaterialService.UpdateMaterialBody
func (s *materialServiceImpl) UpdateMaterialBody(
	ctx context.Context,
	ownerID, id uuid.UUID,
	body string,
) (*domain.Material, error) {
	return s.repo.UpdateBody(ctx, ownerID, id, body)
}

// DeleteMaterial implements MaterialService.DeleteMaterial
func (s *materialServiceImpl) DeleteMaterial(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// deriveTitle builds a library title from the request's prompt text,
// truncated to a displayable length.
func deriveTitle(req domain.GenerationRequest) string {
	theme := strings.TrimSpace(req.PromptTheme())
	if theme == "" {
		return string(req.MaterialType.MaterialType())
	}

	runes := []rune(theme)
	if len(runes) > maxDerivedTitleLength {
		theme = string(runes[:maxDerivedTitleLength])
	}
	return theme
}

// companionTitle labels a companion record after its bundle's title.
func companionTitle(title string, kind domain.CompanionKind) string {
	switch kind {
	case domain.CompanionSupportMaterial:
		return title + " (support material)"
	case domain.CompanionRubric:
		return title + " (rubric)"
	default:
		return title
	}
}
