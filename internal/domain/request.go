package domain

// RequestType identifies what kind of material a generation request asks for.
type RequestType string

// Recognized generation request types.
const (
	RequestTypePlan        RequestType = "plan"
	RequestTypeRubric      RequestType = "rubric"
	RequestTypeActivitySet RequestType = "activity-set"
)

// IsValid reports whether the request type is a recognized kind.
func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypePlan, RequestTypeRubric, RequestTypeActivitySet:
		return true
	default:
		return false
	}
}

// MaterialType maps the request type onto the material type of the primary
// document it produces.
func (t RequestType) MaterialType() MaterialType {
	switch t {
	case RequestTypePlan:
		return MaterialTypePlan
	case RequestTypeRubric:
		return MaterialTypeRubric
	case RequestTypeActivitySet:
		return MaterialTypeActivity
	default:
		return MaterialType(t)
	}
}

// AcademicLevel is the school level a plan targets.
type AcademicLevel string

// Academic levels of the Mexican basic education system.
const (
	LevelPreescolar AcademicLevel = "preescolar"
	LevelPrimaria   AcademicLevel = "primaria"
	LevelSecundaria AcademicLevel = "secundaria"
)

// gradesByLevel holds the grade set allowed for each academic level.
var gradesByLevel = map[AcademicLevel][]string{
	LevelPreescolar: {"1º", "2º", "3º"},
	LevelPrimaria:   {"1º", "2º", "3º", "4º", "5º", "6º"},
	LevelSecundaria: {"1º", "2º", "3º"},
}

// IsValid reports whether the level is a recognized academic level.
func (l AcademicLevel) IsValid() bool {
	_, ok := gradesByLevel[l]
	return ok
}

// AllowsGrade reports whether the grade belongs to the level's allowed set.
// An unrecognized level allows no grades.
func (l AcademicLevel) AllowsGrade(grade string) bool {
	for _, g := range gradesByLevel[l] {
		if g == grade {
			return true
		}
	}
	return false
}

// Grades returns the allowed grade set for the level, in order.
func (l AcademicLevel) Grades() []string {
	grades := gradesByLevel[l]
	out := make([]string, len(grades))
	copy(out, grades)
	return out
}

// OutputFormat controls the structure of the generated document. It never
// affects validation beyond being a recognized value.
type OutputFormat string

// Recognized output formats.
const (
	OutputFormatStandard  OutputFormat = "standard"
	OutputFormatAlternate OutputFormat = "alternate"
)

// IsValid reports whether the output format is recognized.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatStandard, OutputFormatAlternate:
		return true
	default:
		return false
	}
}

// GenerationRequest describes one material generation run. It is a transient
// value passed through the validation and generation pipeline; it is never
// persisted on its own.
type GenerationRequest struct {
	MaterialType   RequestType   `json:"material_type"`
	AcademicLevel  AcademicLevel `json:"academic_level,omitempty"`
	Grade          string        `json:"grade,omitempty"`
	FormativeField string        `json:"formative_field,omitempty"`
	SubjectArea    string        `json:"subject_area,omitempty"`

	// TriggerTheme and ProcessDescriptor are the two prompt text variants;
	// at least one must be non-empty for the request to be valid.
	TriggerTheme      string `json:"trigger_theme,omitempty"`
	ProcessDescriptor string `json:"process_descriptor,omitempty"`

	SessionCount    int    `json:"session_count,omitempty"`
	SessionDuration string `json:"session_duration,omitempty"`

	WantsSupportMaterial bool `json:"wants_support_material,omitempty"`
	WantsRubric          bool `json:"wants_rubric,omitempty"`

	OutputFormat OutputFormat `json:"output_format,omitempty"`
}

// ApplyDefaults fills in the documented defaults for omitted fields:
// a single session and the standard output format.
func (r *GenerationRequest) ApplyDefaults() {
	if r.SessionCount == 0 {
		r.SessionCount = 1
	}
	if r.OutputFormat == "" {
		r.OutputFormat = OutputFormatStandard
	}
}

// PromptTheme returns the effective theme text for prompt construction:
// the trigger theme when present, the process descriptor otherwise.
func (r GenerationRequest) PromptTheme() string {
	if r.TriggerTheme != "" {
		return r.TriggerTheme
	}
	return r.ProcessDescriptor
}
