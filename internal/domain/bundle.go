package domain

// CompanionKind identifies an artifact generated alongside a plan's primary
// document.
type CompanionKind string

// Companion document kinds.
const (
	CompanionSupportMaterial CompanionKind = "support-material"
	CompanionRubric          CompanionKind = "rubric"
)

// MaterialType maps the companion kind onto the material type it is
// persisted under when the bundle is saved.
func (k CompanionKind) MaterialType() MaterialType {
	switch k {
	case CompanionSupportMaterial:
		return MaterialTypeSupport
	case CompanionRubric:
		return MaterialTypeRubric
	default:
		return MaterialType(k)
	}
}

// GenerationWarning records the non-fatal failure of one companion
// generation call. Warnings are attached to the bundle, never raised.
type GenerationWarning struct {
	Kind   CompanionKind `json:"kind"`
	Reason string        `json:"reason"`
}

// MaterialBundle is the transient output of one generation run: the primary
// document for the requested material type, plus any companion documents
// that were requested and produced. A companion that was requested but
// failed is absent from CompanionDocuments and represented by a warning.
//
// Bundles are held by the caller until an explicit save commits them to the
// library; an abandoned bundle is simply discarded.
type MaterialBundle struct {
	Request            GenerationRequest        `json:"request"`
	PrimaryDocument    string                   `json:"primary_document"`
	CompanionDocuments map[CompanionKind]string `json:"companion_documents,omitempty"`
	Warnings           []GenerationWarning      `json:"warnings,omitempty"`
}

// HasWarnings reports whether any companion generation failed.
func (b *MaterialBundle) HasWarnings() bool {
	return len(b.Warnings) > 0
}

// Companion returns the body of the given companion document, if present.
func (b *MaterialBundle) Companion(kind CompanionKind) (string, bool) {
	body, ok := b.CompanionDocuments[kind]
	return body, ok
}
