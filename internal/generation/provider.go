package generation

import (
	"context"

	"github.com/Amecrec/ADIA/internal/domain"
)

// PromptContext carries the request fields a provider needs to produce one
// document. For companion documents, Theme always holds the primary
// document's effective theme so the companion stays scoped to it.
type PromptContext struct {
	AcademicLevel     domain.AcademicLevel
	Grade             string
	FormativeField    string
	SubjectArea       string
	Theme             string
	ProcessDescriptor string
	SessionCount      int
	SessionDuration   string
	OutputFormat      domain.OutputFormat
}

// Provider defines the capability of turning a prompt context into one
// textual document of the given material type. Implementations are expected
// to honor ctx cancellation and to map their failure modes onto the
// sentinel errors in this package.
type Provider interface {
	// Produce generates the text body of a single document.
	//
	// Parameters:
	//   - ctx: Context for the operation; carries the per-call deadline
	//   - kind: The material type of the document to produce
	//   - pc: The request fields relevant to prompt construction
	//
	// Returns the document body, or an error classified as
	// ErrProviderUnavailable, ErrProviderTimeout, or ErrProviderRejected.
	Produce(ctx context.Context, kind domain.MaterialType, pc PromptContext) (string, error)
}

// promptContextFor builds the PromptContext for a request's primary document.
func promptContextFor(req domain.GenerationRequest) PromptContext {
	return PromptContext{
		AcademicLevel:     req.AcademicLevel,
		Grade:             req.Grade,
		FormativeField:    req.FormativeField,
		SubjectArea:       req.SubjectArea,
		Theme:             req.PromptTheme(),
		ProcessDescriptor: req.ProcessDescriptor,
		SessionCount:      req.SessionCount,
		SessionDuration:   req.SessionDuration,
		OutputFormat:      req.OutputFormat,
	}
}
