package generation

import (
	"fmt"
	"strings"

	"github.com/Amecrec/ADIA/internal/domain"
)

// Rejection reasons reported by Validate. The presentation layer owns the
// user-visible wording; these are stable identifiers for each rule.
const (
	ReasonUnknownMaterialType   = "unknown material type"
	ReasonMissingAcademicLevel  = "missing academic level"
	ReasonUnknownAcademicLevel  = "unknown academic level"
	ReasonGradeNotInLevel       = "grade not allowed for academic level"
	ReasonMissingSubjectArea    = "missing subject area"
	ReasonMissingThemeObjective = "missing theme/objective"
	ReasonInvalidSessionCount   = "session count must be a positive integer"
	ReasonUnknownOutputFormat   = "unknown output format"
)

// ValidationError collects every rule violation found in a generation
// request, so the caller can report all problems at once instead of fixing
// them one round trip at a time.
type ValidationError struct {
	Reasons []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid generation request: %s", strings.Join(e.Reasons, "; "))
}

// Unwrap ties ValidationError into the ErrInvalidRequest category.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// Validate checks a generation request against the per-type rules. It is a
// pure function: no side effects, no I/O. All rules are evaluated
// independently and every violation is collected; a nil return means the
// request is valid.
func Validate(req domain.GenerationRequest) error {
	var reasons []string

	if !req.MaterialType.IsValid() {
		reasons = append(reasons, ReasonUnknownMaterialType)
	}

	// Plan requests carry the full curricular context; the other types only
	// need a theme or objective.
	if req.MaterialType == domain.RequestTypePlan {
		switch {
		case req.AcademicLevel == "":
			reasons = append(reasons, ReasonMissingAcademicLevel)
		case !req.AcademicLevel.IsValid():
			reasons = append(reasons, ReasonUnknownAcademicLevel)
		case !req.AcademicLevel.AllowsGrade(req.Grade):
			reasons = append(reasons, ReasonGradeNotInLevel)
		}

		if strings.TrimSpace(req.SubjectArea) == "" {
			reasons = append(reasons, ReasonMissingSubjectArea)
		}
	} else if req.AcademicLevel != "" && !req.AcademicLevel.IsValid() {
		// Levels stay optional outside plans, but an unknown value is still
		// rejected rather than silently coerced.
		reasons = append(reasons, ReasonUnknownAcademicLevel)
	}

	if strings.TrimSpace(req.TriggerTheme) == "" &&
		strings.TrimSpace(req.ProcessDescriptor) == "" {
		reasons = append(reasons, ReasonMissingThemeObjective)
	}

	// Zero means omitted; ApplyDefaults turns it into a single session.
	if req.SessionCount < 0 {
		reasons = append(reasons, ReasonInvalidSessionCount)
	}

	if req.OutputFormat != "" && !req.OutputFormat.IsValid() {
		reasons = append(reasons, ReasonUnknownOutputFormat)
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}
