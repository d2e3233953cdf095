// Package gemini implements the generation.Provider interface using
// Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/Amecrec/ADIA/internal/config"
	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/generation"
)

// Provider implements generation.Provider against the Gemini API.
type Provider struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
	model  string
}

// Ensure Provider implements the generation.Provider interface
var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Gemini-backed generation provider.
//
// Parameters:
//   - ctx: Context for client initialization
//   - log: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and retry settings
//
// Returns a properly initialized Provider or an error if the configuration
// is invalid or the client cannot be created.
func NewProvider(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (*Provider, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Provider{
		logger: log.With(slog.String("component", "gemini_provider")),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Produce implements generation.Provider.Produce
// It renders the prompt for the requested document kind and calls the
// Gemini API with retries for transient failures.
func (p *Provider) Produce(
	ctx context.Context,
	kind domain.MaterialType,
	pc generation.PromptContext,
) (string, error) {
	prompt, err := buildPrompt(kind, pc)
	if err != nil {
		return "", err
	}

	p.logger.DebugContext(ctx, "prompt built",
		slog.String("kind", string(kind)),
		slog.Int("prompt_length", len(prompt)))

	return p.callWithRetry(ctx, kind, prompt)
}

// callWithRetry calls the Gemini API with exponential backoff and jitter
// for transient failures. Permanent failures (safety blocks, malformed
// responses) return immediately; the context deadline always wins.
func (p *Provider) callWithRetry(
	ctx context.Context,
	kind domain.MaterialType,
	prompt string,
) (string, error) {
	maxRetries := p.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelaySeconds := p.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		p.logger.InfoContext(ctx, "calling Gemini API",
			slog.String("kind", string(kind)),
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1))

		text, err := p.call(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		// The orchestrator maps deadline errors onto its timeout taxonomy;
		// report them unchanged.
		if ctx.Err() != nil {
			return "", fmt.Errorf("gemini call aborted: %w", ctx.Err())
		}

		if !isTransient(err) {
			p.logger.WarnContext(ctx, "permanent Gemini error, not retrying",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
			return "", err
		}

		if attempt == maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		p.logger.InfoContext(ctx, "retrying Gemini call after delay",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("gemini call aborted during retry delay: %w", ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: exceeded %d attempts: %v",
		generation.ErrProviderUnavailable, maxRetries+1, lastErr)
}

// call performs a single Gemini API request and classifies its outcome.
func (p *Provider) call(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyAPIError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrGenerationFailed)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters",
			generation.ErrProviderRejected)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", generation.ErrGenerationFailed)
	}

	return text, nil
}

// classifyAPIError maps Gemini API errors onto the generation taxonomy.
func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", generation.ErrProviderUnavailable, err)
		case apiErr.Code == http.StatusBadRequest:
			return fmt.Errorf("%w: %v", generation.ErrProviderRejected, err)
		}
	}
	return fmt.Errorf("%w: %v", generation.ErrProviderUnavailable, err)
}

// isTransient reports whether a classified error is worth retrying.
func isTransient(err error) bool {
	return errors.Is(err, generation.ErrProviderUnavailable)
}
