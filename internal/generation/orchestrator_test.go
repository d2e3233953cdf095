package generation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amecrec/ADIA/internal/domain"
)

// fakeProvider returns canned documents or errors per material type and
// records the kinds it was called with.
type fakeProvider struct {
	mu        sync.Mutex
	documents map[domain.MaterialType]string
	errors    map[domain.MaterialType]error
	delay     time.Duration
	calls     []domain.MaterialType
}

func (p *fakeProvider) Produce(
	ctx context.Context,
	kind domain.MaterialType,
	pc PromptContext,
) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, kind)
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err, ok := p.errors[kind]; ok {
		return "", err
	}
	if doc, ok := p.documents[kind]; ok {
		return doc, nil
	}
	return "generated " + string(kind), nil
}

func (p *fakeProvider) calledWith(kind domain.MaterialType) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.calls {
		if c == kind {
			return true
		}
	}
	return false
}

func newTestOrchestrator(t *testing.T, provider Provider, timeout time.Duration) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(provider, timeout, nil)
	require.NoError(t, err)
	return o
}

func planRequest(support, rubric bool) domain.GenerationRequest {
	return domain.GenerationRequest{
		MaterialType:         domain.RequestTypePlan,
		AcademicLevel:        domain.LevelPrimaria,
		Grade:                "3º",
		SubjectArea:          "Saberes y pensamiento científico",
		TriggerTheme:         "Los ecosistemas de México",
		WantsSupportMaterial: support,
		WantsRubric:          rubric,
	}
}

func TestNewOrchestrator(t *testing.T) {
	_, err := NewOrchestrator(nil, time.Second, nil)
	assert.Error(t, err)

	o, err := NewOrchestrator(&fakeProvider{}, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCallTimeout, o.callTimeout)
}

func TestGeneratePlanWithAllCompanions(t *testing.T) {
	provider := &fakeProvider{
		documents: map[domain.MaterialType]string{
			domain.MaterialTypePlan:    "plan body",
			domain.MaterialTypeSupport: "support body",
			domain.MaterialTypeRubric:  "rubric body",
		},
	}
	o := newTestOrchestrator(t, provider, time.Second)

	bundle, err := o.Generate(context.Background(), planRequest(true, true))
	require.NoError(t, err)

	assert.Equal(t, "plan body", bundle.PrimaryDocument)

	support, ok := bundle.Companion(domain.CompanionSupportMaterial)
	require.True(t, ok)
	assert.Equal(t, "support body", support)

	rubric, ok := bundle.Companion(domain.CompanionRubric)
	require.True(t, ok)
	assert.Equal(t, "rubric body", rubric)

	assert.False(t, bundle.HasWarnings())
}

func TestGeneratePlanWithoutCompanions(t *testing.T) {
	provider := &fakeProvider{}
	o := newTestOrchestrator(t, provider, time.Second)

	bundle, err := o.Generate(context.Background(), planRequest(false, false))
	require.NoError(t, err)

	assert.Empty(t, bundle.CompanionDocuments)
	assert.False(t, provider.calledWith(domain.MaterialTypeSupport))
	assert.False(t, provider.calledWith(domain.MaterialTypeRubric))
}

// A failed companion degrades the bundle: its key is absent and a warning
// is attached, but the primary result still comes back.
func TestGenerateCompanionFailureDegrades(t *testing.T) {
	provider := &fakeProvider{
		documents: map[domain.MaterialType]string{
			domain.MaterialTypePlan:   "plan body",
			domain.MaterialTypeRubric: "rubric body",
		},
		errors: map[domain.MaterialType]error{
			domain.MaterialTypeSupport: ErrProviderUnavailable,
		},
	}
	o := newTestOrchestrator(t, provider, time.Second)

	bundle, err := o.Generate(context.Background(), planRequest(true, true))
	require.NoError(t, err)

	assert.Equal(t, "plan body", bundle.PrimaryDocument)

	_, ok := bundle.Companion(domain.CompanionSupportMaterial)
	assert.False(t, ok, "failed companion must not appear in the bundle")

	rubric, ok := bundle.Companion(domain.CompanionRubric)
	require.True(t, ok)
	assert.Equal(t, "rubric body", rubric)

	require.Len(t, bundle.Warnings, 1)
	assert.Equal(t, domain.CompanionSupportMaterial, bundle.Warnings[0].Kind)
	assert.NotEmpty(t, bundle.Warnings[0].Reason)
}

// A primary failure fails the whole request even when companions succeed.
func TestGeneratePrimaryFailureFailsRequest(t *testing.T) {
	provider := &fakeProvider{
		errors: map[domain.MaterialType]error{
			domain.MaterialTypePlan: ErrProviderUnavailable,
		},
	}
	o := newTestOrchestrator(t, provider, time.Second)

	bundle, err := o.Generate(context.Background(), planRequest(true, true))
	assert.Nil(t, bundle)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, ErrProviderUnavailable))
}

func TestGeneratePrimaryTimeout(t *testing.T) {
	provider := &fakeProvider{delay: 200 * time.Millisecond}
	o := newTestOrchestrator(t, provider, 20*time.Millisecond)

	bundle, err := o.Generate(context.Background(), planRequest(false, false))
	assert.Nil(t, bundle)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, ErrProviderTimeout))
}

func TestGenerateEmptyDocumentFails(t *testing.T) {
	provider := &fakeProvider{
		documents: map[domain.MaterialType]string{
			domain.MaterialTypePlan: "   ",
		},
	}
	o := newTestOrchestrator(t, provider, time.Second)

	_, err := o.Generate(context.Background(), planRequest(false, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	provider := &fakeProvider{}
	o := newTestOrchestrator(t, provider, time.Second)

	_, err := o.Generate(context.Background(), domain.GenerationRequest{
		MaterialType: "worksheet",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.Empty(t, provider.calls, "provider must not be called for an invalid request")
}

// Companion flags are ignored for non-plan requests.
func TestGenerateCompanionFlagsIgnoredOutsidePlans(t *testing.T) {
	provider := &fakeProvider{}
	o := newTestOrchestrator(t, provider, time.Second)

	bundle, err := o.Generate(context.Background(), domain.GenerationRequest{
		MaterialType:         domain.RequestTypeRubric,
		TriggerTheme:         "Proyectos comunitarios",
		WantsSupportMaterial: true,
		WantsRubric:          true,
	})
	require.NoError(t, err)
	assert.Empty(t, bundle.CompanionDocuments)
	assert.Len(t, provider.calls, 1)
}

func TestGenerateAppliesDefaults(t *testing.T) {
	provider := &fakeProvider{}
	o := newTestOrchestrator(t, provider, time.Second)

	bundle, err := o.Generate(context.Background(), planRequest(false, false))
	require.NoError(t, err)
	assert.Equal(t, 1, bundle.Request.SessionCount)
	assert.Equal(t, domain.OutputFormatStandard, bundle.Request.OutputFormat)
}
