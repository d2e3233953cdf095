package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/store"
)

// mockMaterialRepository is a hand-written repository fake that records
// created materials and delegates reads to an in-memory map.
type mockMaterialRepository struct {
	created   []*domain.Material
	createErr error
	materials map[uuid.UUID]*domain.Material
}

func newMockMaterialRepository() *mockMaterialRepository {
	return &mockMaterialRepository{materials: make(map[uuid.UUID]*domain.Material)}
}

func (m *mockMaterialRepository) CreateMultiple(
	ctx context.Context,
	materials []*domain.Material,
) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, materials...)
	for _, mat := range materials {
		m.materials[mat.ID] = mat
	}
	return nil
}

func (m *mockMaterialRepository) GetByID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.Material, error) {
	mat, ok := m.materials[id]
	if !ok || mat.OwnerID != ownerID {
		return nil, store.ErrMaterialNotFound
	}
	return mat, nil
}

func (m *mockMaterialRepository) List(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Material, error) {
	var out []*domain.Material
	for _, mat := range m.materials {
		if mat.OwnerID == ownerID {
			out = append(out, mat)
		}
	}
	return out, nil
}

func (m *mockMaterialRepository) UpdateBody(
	ctx context.Context,
	ownerID, id uuid.UUID,
	body string,
) (*domain.Material, error) {
	mat, err := m.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := mat.UpdateBody(body); err != nil {
		return nil, err
	}
	return mat, nil
}

func (m *mockMaterialRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := m.GetByID(ctx, ownerID, id); err != nil {
		return err
	}
	delete(m.materials, id)
	return nil
}

func planBundle(support, rubric bool) *domain.MaterialBundle {
	bundle := &domain.MaterialBundle{
		Request: domain.GenerationRequest{
			MaterialType:  domain.RequestTypePlan,
			AcademicLevel: domain.LevelPrimaria,
			Grade:         "5º",
			SubjectArea:   "Lenguajes",
			TriggerTheme:  "La independencia de México",
		},
		PrimaryDocument: "plan body",
	}
	if support || rubric {
		bundle.CompanionDocuments = make(map[domain.CompanionKind]string)
	}
	if support {
		bundle.CompanionDocuments[domain.CompanionSupportMaterial] = "support body"
	}
	if rubric {
		bundle.CompanionDocuments[domain.CompanionRubric] = "rubric body"
	}
	return bundle
}

func TestNewMaterialService(t *testing.T) {
	_, err := NewMaterialService(nil, nil)
	assert.Error(t, err)

	svc, err := NewMaterialService(newMockMaterialRepository(), nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

// Each document in the bundle becomes its own material record, saved
// atomically in one repository call.
func TestSaveBundleOneRecordPerDocument(t *testing.T) {
	repo := newMockMaterialRepository()
	svc, err := NewMaterialService(repo, nil)
	require.NoError(t, err)

	owner := uuid.New()
	materials, err := svc.SaveBundle(context.Background(), owner, "Mi plan", planBundle(true, true))
	require.NoError(t, err)
	require.Len(t, materials, 3)

	// Primary first, then companions in fixed order.
	assert.Equal(t, domain.MaterialTypePlan, materials[0].MaterialType)
	assert.Equal(t, "Mi plan", materials[0].Title)
	assert.Equal(t, "plan body", materials[0].Body)

	assert.Equal(t, domain.MaterialTypeSupport, materials[1].MaterialType)
	assert.Equal(t, "Mi plan (support material)", materials[1].Title)

	assert.Equal(t, domain.MaterialTypeRubric, materials[2].MaterialType)
	assert.Equal(t, "Mi plan (rubric)", materials[2].Title)

	for _, m := range materials {
		assert.Equal(t, owner, m.OwnerID)
	}

	// All three went through a single CreateMultiple call.
	assert.Len(t, repo.created, 3)
}

func TestSaveBundlePrimaryOnly(t *testing.T) {
	repo := newMockMaterialRepository()
	svc, err := NewMaterialService(repo, nil)
	require.NoError(t, err)

	materials, err := svc.SaveBundle(context.Background(), uuid.New(), "", planBundle(false, false))
	require.NoError(t, err)
	require.Len(t, materials, 1)

	// An empty title is derived from the request's theme.
	assert.Equal(t, "La independencia de México", materials[0].Title)
}

func TestSaveBundleDerivedTitleTruncated(t *testing.T) {
	repo := newMockMaterialRepository()
	svc, err := NewMaterialService(repo, nil)
	require.NoError(t, err)

	bundle := planBundle(false, false)
	bundle.Request.TriggerTheme = strings.Repeat("á", 200)

	materials, err := svc.SaveBundle(context.Background(), uuid.New(), "", bundle)
	require.NoError(t, err)
	assert.Len(t, []rune(materials[0].Title), maxDerivedTitleLength)
}

func TestSaveBundleRejectsEmptyBundle(t *testing.T) {
	svc, err := NewMaterialService(newMockMaterialRepository(), nil)
	require.NoError(t, err)

	_, err = svc.SaveBundle(context.Background(), uuid.New(), "t", nil)
	assert.True(t, errors.Is(err, ErrEmptyBundle))

	_, err = svc.SaveBundle(context.Background(), uuid.New(), "t",
		&domain.MaterialBundle{PrimaryDocument: "   "})
	assert.True(t, errors.Is(err, ErrEmptyBundle))
}

// Malformed client-supplied bundles surface as validation failures, not
// internal errors, and nothing is persisted.
func TestSaveBundleRejectsInvalidBundleData(t *testing.T) {
	repo := newMockMaterialRepository()
	svc, err := NewMaterialService(repo, nil)
	require.NoError(t, err)

	unknownType := planBundle(false, false)
	unknownType.Request.MaterialType = "banana"

	emptyCompanion := planBundle(true, false)
	emptyCompanion.CompanionDocuments[domain.CompanionSupportMaterial] = ""

	tests := []struct {
		name   string
		bundle *domain.MaterialBundle
	}{
		{"unknown material type", unknownType},
		{"empty companion body", emptyCompanion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveBundle(context.Background(), uuid.New(), "t", tt.bundle)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
	assert.Empty(t, repo.created)
}

func TestSaveBundleRejectsNilOwner(t *testing.T) {
	svc, err := NewMaterialService(newMockMaterialRepository(), nil)
	require.NoError(t, err)

	_, err = svc.SaveBundle(context.Background(), uuid.Nil, "t", planBundle(false, false))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestSaveBundlePropagatesRepositoryError(t *testing.T) {
	repo := newMockMaterialRepository()
	repo.createErr = store.ErrTransactionFailed
	svc, err := NewMaterialService(repo, nil)
	require.NoError(t, err)

	_, err = svc.SaveBundle(context.Background(), uuid.New(), "t", planBundle(true, false))
	assert.True(t, errors.Is(err, store.ErrTransactionFailed))
}

// Saved materials are immediately visible through the read side.
func TestSaveThenQuery(t *testing.T) {
	repo := newMockMaterialRepository()
	svc, err := NewMaterialService(repo, nil)
	require.NoError(t, err)
	query, err := NewQueryService(repo, nil)
	require.NoError(t, err)

	owner := uuid.New()
	_, err = svc.SaveBundle(context.Background(), owner, "Mi plan", planBundle(true, true))
	require.NoError(t, err)

	all, err := query.Query(context.Background(), owner, FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rubrics, err := query.Query(context.Background(), owner, string(domain.MaterialTypeRubric))
	require.NoError(t, err)
	require.Len(t, rubrics, 1)
	assert.Equal(t, "Mi plan (rubric)", rubrics[0].Title)
}

func TestGetUpdateDeleteDelegation(t *testing.T) {
	repo := newMockMaterialRepository()
	svc, err := NewMaterialService(repo, nil)
	require.NoError(t, err)

	owner := uuid.New()
	materials, err := svc.SaveBundle(context.Background(), owner, "t", planBundle(false, false))
	require.NoError(t, err)
	id := materials[0].ID

	got, err := svc.GetMaterial(context.Background(), owner, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	updated, err := svc.UpdateMaterialBody(context.Background(), owner, id, "edited body")
	require.NoError(t, err)
	assert.Equal(t, "edited body", updated.Body)

	require.NoError(t, svc.DeleteMaterial(context.Background(), owner, id))
	_, err = svc.GetMaterial(context.Background(), owner, id)
	assert.True(t, errors.Is(err, store.ErrMaterialNotFound))
}
