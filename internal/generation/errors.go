package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidRequest is returned when the orchestrator receives a request
	// that does not pass validation. The validator is expected to run first,
	// so hitting this is a programming error in the caller.
	ErrInvalidRequest = errors.New("generation request is not valid")

	// ErrGenerationFailed is returned when the primary document cannot be
	// produced for any general reason.
	ErrGenerationFailed = errors.New("failed to generate material")

	// ErrProviderUnavailable is returned when the generation provider cannot
	// be reached or reports a transient outage.
	ErrProviderUnavailable = errors.New("generation provider unavailable")

	// ErrProviderTimeout is returned when a provider call exceeds the
	// per-call deadline.
	ErrProviderTimeout = errors.New("generation provider timed out")

	// ErrProviderRejected is returned when the provider explicitly declines
	// to produce the document, e.g. because of safety filters.
	ErrProviderRejected = errors.New("generation provider rejected the request")

	// ErrInvalidConfig is returned when a provider implementation is
	// configured incorrectly.
	ErrInvalidConfig = errors.New("invalid provider configuration")
)
