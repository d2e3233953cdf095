package gemini

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/generation"
)

// Prompt templates per document kind. They are embedded rather than loaded
// from disk so a misconfigured deployment cannot ship without them.
const (
	planPromptTemplate = `You are an experienced Mexican basic-education teacher.
Write a complete didactic plan ("planeación didáctica") in Markdown.

Context:
- Academic level: {{.AcademicLevel}}
- Grade: {{.Grade}}
{{- if .FormativeField}}
- Formative field: {{.FormativeField}}
{{- end}}
- Subject area: {{.SubjectArea}}
- Theme or learning process: {{.Theme}}
- Number of sessions: {{.SessionCount}}
{{- if .SessionDuration}}
- Session duration: {{.SessionDuration}}
{{- end}}

{{if eq .OutputFormat "alternate" -}}
Structure the plan session by session, each with opening, development and
closing activities.
{{- else -}}
Structure the plan with general information, learning purposes, a sequence
of activities, and evaluation suggestions.
{{- end}}
Respond with the document body only.`

	rubricPromptTemplate = `You are an experienced Mexican basic-education teacher.
Write an evaluation rubric in Markdown, as a criteria table with four
performance levels.

Objective or activity to evaluate: {{.Theme}}
{{- if .Grade}}
Grade/level: {{.Grade}} {{.AcademicLevel}}
{{- end}}
{{- if .SubjectArea}}
Subject area: {{.SubjectArea}}
{{- end}}

Respond with the document body only.`

	activityPromptTemplate = `You are an experienced Mexican basic-education teacher.
Write a set of classroom activities in Markdown for the following theme,
covering exploration, practice and closing/evaluation.

Theme or learning process: {{.Theme}}
{{- if .Grade}}
Grade/level: {{.Grade}} {{.AcademicLevel}}
{{- end}}
{{- if .SubjectArea}}
Subject area: {{.SubjectArea}}
{{- end}}

Respond with the document body only.`

	supportPromptTemplate = `You are an experienced Mexican basic-education teacher.
Write supporting resources ("material de apoyo") in Markdown for a didactic
plan on the theme below: printable materials, reading suggestions, and
preparation notes for the teacher.

Theme of the plan: {{.Theme}}
{{- if .Grade}}
Grade/level: {{.Grade}} {{.AcademicLevel}}
{{- end}}
{{- if .SubjectArea}}
Subject area: {{.SubjectArea}}
{{- end}}

Respond with the document body only.`
)

// promptTemplates maps each producible material type to its parsed template.
var promptTemplates = template.Must(
	template.New("plan").Parse(planPromptTemplate),
)

func init() {
	template.Must(promptTemplates.New("rubric").Parse(rubricPromptTemplate))
	template.Must(promptTemplates.New("activity").Parse(activityPromptTemplate))
	template.Must(promptTemplates.New("support-material").Parse(supportPromptTemplate))
}

// buildPrompt renders the prompt for one document kind from the request
// context.
func buildPrompt(kind domain.MaterialType, pc generation.PromptContext) (string, error) {
	tmpl := promptTemplates.Lookup(string(kind))
	if tmpl == nil {
		return "", fmt.Errorf("%w: no prompt template for kind %q",
			generation.ErrInvalidConfig, kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pc); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %q: %w", kind, err)
	}
	return buf.String(), nil
}
