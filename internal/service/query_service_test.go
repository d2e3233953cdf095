package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amecrec/ADIA/internal/domain"
)

// stubReader returns a fixed set of materials for any owner.
type stubReader struct {
	materials []*domain.Material
	err       error
}

func (r *stubReader) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Material, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Material, len(r.materials))
	copy(out, r.materials)
	return out, nil
}

func libraryMaterial(
	materialType domain.MaterialType,
	title string,
	updatedAt time.Time,
) *domain.Material {
	return &domain.Material{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Title:        title,
		MaterialType: materialType,
		Body:         "body",
		CreatedAt:    updatedAt,
		UpdatedAt:    updatedAt,
	}
}

func TestNewQueryService(t *testing.T) {
	_, err := NewQueryService(nil, nil)
	assert.Error(t, err)

	svc, err := NewQueryService(&stubReader{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestQueryOrdersByRecency(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	oldest := libraryMaterial(domain.MaterialTypePlan, "oldest", base)
	middle := libraryMaterial(domain.MaterialTypeRubric, "middle", base.Add(time.Hour))
	newest := libraryMaterial(domain.MaterialTypeActivity, "newest", base.Add(2*time.Hour))

	svc, err := NewQueryService(&stubReader{
		materials: []*domain.Material{oldest, newest, middle},
	}, nil)
	require.NoError(t, err)

	got, err := svc.Query(context.Background(), uuid.New(), FilterAll)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "oldest", got[2].Title)
}

// Equal timestamps are ordered by ascending ID so the listing is stable
// across calls.
func TestQueryBreaksTiesByID(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := libraryMaterial(domain.MaterialTypePlan, "a", ts)
	b := libraryMaterial(domain.MaterialTypePlan, "b", ts)

	svc, err := NewQueryService(&stubReader{
		materials: []*domain.Material{a, b},
	}, nil)
	require.NoError(t, err)

	got, err := svc.Query(context.Background(), uuid.New(), FilterAll)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, bytes.Compare(got[0].ID[:], got[1].ID[:]) < 0)
}

func TestQueryFiltersByType(t *testing.T) {
	ts := time.Now().UTC()
	plan := libraryMaterial(domain.MaterialTypePlan, "plan", ts)
	rubric := libraryMaterial(domain.MaterialTypeRubric, "rubric", ts.Add(time.Minute))
	support := libraryMaterial(domain.MaterialTypeSupport, "support", ts.Add(2*time.Minute))

	svc, err := NewQueryService(&stubReader{
		materials: []*domain.Material{plan, rubric, support},
	}, nil)
	require.NoError(t, err)

	got, err := svc.Query(context.Background(), uuid.New(), string(domain.MaterialTypeRubric))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rubric", got[0].Title)
}

// Unknown filter values fall back to listing everything.
func TestQueryUnknownFilterMeansAll(t *testing.T) {
	ts := time.Now().UTC()
	svc, err := NewQueryService(&stubReader{
		materials: []*domain.Material{
			libraryMaterial(domain.MaterialTypePlan, "plan", ts),
			libraryMaterial(domain.MaterialTypeRubric, "rubric", ts.Add(time.Minute)),
		},
	}, nil)
	require.NoError(t, err)

	for _, filter := range []string{"everything", "", FilterAll} {
		got, qerr := svc.Query(context.Background(), uuid.New(), filter)
		require.NoError(t, qerr)
		assert.Len(t, got, 2, "filter %q", filter)
	}
}

func TestQueryPropagatesReaderError(t *testing.T) {
	readerErr := errors.New("backend down")
	svc, err := NewQueryService(&stubReader{err: readerErr}, nil)
	require.NoError(t, err)

	_, err = svc.Query(context.Background(), uuid.New(), FilterAll)
	assert.True(t, errors.Is(err, readerErr))
}

func TestQueryEmptyLibrary(t *testing.T) {
	svc, err := NewQueryService(&stubReader{}, nil)
	require.NoError(t, err)

	got, err := svc.Query(context.Background(), uuid.New(), FilterAll)
	require.NoError(t, err)
	assert.Empty(t, got)
}
