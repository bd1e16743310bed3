package note

import (
	"fmt"
	"strings"
)

// noteFields lists the six output keys in canonical order. The prompt,
// the normalizer, and the PDF renderer all work off this list.
var noteFields = []string{
	"presenting_complaints",
	"clinical_interpretation",
	"relevant_medical_history",
	"lab_report_summary",
	"assessment_impression",
	"full_structured_note",
}

const promptTemplate = `You are a clinical documentation assistant helping a physician draft a structured clinical note.

Clinical context:
%s

Instructions:
- Use standard clinical terminology only.
- Do not fabricate findings, diagnoses, or values that are not supported by the context above.
- If a section has no supporting information, use an empty string for it.
- Respond with a single JSON object and nothing else: no explanations, no markdown, no code fences.

The JSON object must contain exactly these keys, each mapped to a string value:
%s`

// BuildPrompt wraps the assembled context in the fixed instructional
// template. Deterministic; the context is interpolated exactly once.
func BuildPrompt(context string) string {
	keys := make([]string, len(noteFields))
	for i, f := range noteFields {
		keys[i] = fmt.Sprintf("%q", f)
	}
	return fmt.Sprintf(promptTemplate, strings.TrimRight(context, "\n"), strings.Join(keys, ", "))
}
