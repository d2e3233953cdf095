package service

import (
	"bytes"
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/platform/logger"
)

// FilterAll selects every material type in a library query.
const FilterAll = "all"

// MaterialReader is the read-only slice of the repository the query
// service needs.
type MaterialReader interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Material, error)
}

// QueryService is the read-side projection over an owner's library. It
// never mutates the store; each call works on the snapshot the reader
// returns, so it is safe to run concurrently with writes.
type QueryService struct {
	reader MaterialReader
	logger *slog.Logger
}

// NewQueryService creates a new QueryService.
func NewQueryService(reader MaterialReader, log *slog.Logger) (*QueryService, error) {
	if reader == nil {
		return nil, domain.NewValidationError("reader", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &QueryService{
		reader: reader,
		logger: log.With(slog.String("component", "query_service")),
	}, nil
}

// Query returns the owner's materials matching the filter, most recently
// modified first, ties broken by ascending ID for determinism.
//
// The filter is either FilterAll or one material type. Unknown filter
// values are treated as FilterAll rather than erroring, matching the
// non-blocking filter control in the UI.
func (s *QueryService) Query(
	ctx context.Context,
	ownerID uuid.UUID,
	filter string,
) ([]*domain.Material, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	materials, err := s.reader.List(ctx, ownerID)
	if err != nil {
		log.Error("failed to list materials for query",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	materials = filterMaterials(materials, normalizeFilter(filter))

	sort.SliceStable(materials, func(i, j int) bool {
		if !materials[i].UpdatedAt.Equal(materials[j].UpdatedAt) {
			return materials[i].UpdatedAt.After(materials[j].UpdatedAt)
		}
		return bytes.Compare(materials[i].ID[:], materials[j].ID[:]) < 0
	})

	log.Debug("library query completed",
		slog.String("owner_id", ownerID.String()),
		slog.String("filter", filter),
		slog.Int("count", len(materials)))
	return materials, nil
}

// normalizeFilter maps a raw filter string to a material type, or "" for
// the catch-all. Unknown values fall back to the catch-all by design.
func normalizeFilter(filter string) domain.MaterialType {
	switch t := domain.MaterialType(filter); t {
	case domain.MaterialTypePlan, domain.MaterialTypeRubric,
		domain.MaterialTypeActivity, domain.MaterialTypeSupport:
		return t
	default:
		return ""
	}
}

// filterMaterials keeps the materials of the given type; an empty type
// keeps everything.
func filterMaterials(
	materials []*domain.Material,
	materialType domain.MaterialType,
) []*domain.Material {
	if materialType == "" {
		return materials
	}

	filtered := materials[:0]
	for _, m := range materials {
		if m.MaterialType == materialType {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
