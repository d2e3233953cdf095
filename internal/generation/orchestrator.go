package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/platform/logger"
)

// DefaultCallTimeout bounds a single provider call when no timeout is
// configured. A stalled provider must never hang the whole request.
const DefaultCallTimeout = 60 * time.Second

// Orchestrator turns a validated generation request into a MaterialBundle.
// It issues one provider call for the primary document and, for plan
// requests, one independent call per requested companion. The calls run
// concurrently; the orchestrator waits for all of them to settle.
//
// Failure policy: a primary failure fails the whole request (there is
// nothing useful to return without a primary document), while a companion
// failure only degrades the bundle with a warning. Nothing here persists
// anything.
type Orchestrator struct {
	provider    Provider
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewOrchestrator creates an Orchestrator around the given provider.
// A non-positive callTimeout falls back to DefaultCallTimeout.
func NewOrchestrator(
	provider Provider,
	callTimeout time.Duration,
	log *slog.Logger,
) (*Orchestrator, error) {
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return &Orchestrator{
		provider:    provider,
		callTimeout: callTimeout,
		logger:      log.With(slog.String("component", "orchestrator")),
	}, nil
}

// companionResult holds the outcome of one companion generation call.
// Results are written into per-call slots so the assembled bundle is
// deterministic regardless of goroutine completion order.
type companionResult struct {
	kind domain.CompanionKind
	text string
	err  error
}

// Generate produces a MaterialBundle for the request. The request must have
// passed Validate first; an unvalidated request is a programming error and
// fails fast with ErrInvalidRequest.
func (o *Orchestrator) Generate(
	ctx context.Context,
	req domain.GenerationRequest,
) (*domain.MaterialBundle, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	if err := Validate(req); err != nil {
		return nil, err
	}
	req.ApplyDefaults()

	pc := promptContextFor(req)
	companions := companionsFor(req)

	log.Debug("starting generation fan-out",
		slog.String("material_type", string(req.MaterialType)),
		slog.Int("companion_count", len(companions)))

	g, gctx := errgroup.WithContext(ctx)

	var primary string
	g.Go(func() error {
		text, err := o.produce(gctx, req.MaterialType.MaterialType(), pc)
		if err != nil {
			return fmt.Errorf("primary document: %w", err)
		}
		primary = text
		return nil
	})

	results := make([]companionResult, len(companions))
	for i, kind := range companions {
		g.Go(func() error {
			text, err := o.produce(gctx, kind.MaterialType(), pc)
			results[i] = companionResult{kind: kind, text: text, err: err}
			// Companion failures degrade the bundle, they never fail it.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn("primary generation failed",
			slog.String("material_type", string(req.MaterialType)),
			slog.String("error", err.Error()))
		return nil, errors.Join(ErrGenerationFailed, err)
	}

	bundle := &domain.MaterialBundle{
		Request:         req,
		PrimaryDocument: primary,
	}
	if len(companions) > 0 {
		bundle.CompanionDocuments = make(map[domain.CompanionKind]string, len(companions))
	}

	for _, res := range results {
		if res.err != nil {
			log.Warn("companion generation failed",
				slog.String("kind", string(res.kind)),
				slog.String("error", res.err.Error()))
			bundle.Warnings = append(bundle.Warnings, domain.GenerationWarning{
				Kind:   res.kind,
				Reason: res.err.Error(),
			})
			continue
		}
		bundle.CompanionDocuments[res.kind] = res.text
	}

	log.Info("generation completed",
		slog.String("material_type", string(req.MaterialType)),
		slog.Int("companions", len(bundle.CompanionDocuments)),
		slog.Int("warnings", len(bundle.Warnings)))
	return bundle, nil
}

// produce runs a single provider call under the per-call timeout and
// normalizes its failure modes.
func (o *Orchestrator) produce(
	ctx context.Context,
	kind domain.MaterialType,
	pc PromptContext,
) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	text, err := o.provider.Produce(callCtx, kind, pc)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", ErrProviderTimeout, kind)
		}
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: provider returned an empty %s document",
			ErrGenerationFailed, kind)
	}
	return text, nil
}

// companionsFor lists the companion kinds the request asks for. Companions
// only apply to plan generation; the flags are ignored for other types.
func companionsFor(req domain.GenerationRequest) []domain.CompanionKind {
	if req.MaterialType != domain.RequestTypePlan {
		return nil
	}

	var kinds []domain.CompanionKind
	if req.WantsSupportMaterial {
		kinds = append(kinds, domain.CompanionSupportMaterial)
	}
	if req.WantsRubric {
		kinds = append(kinds, domain.CompanionRubric)
	}
	return kinds
}
