package note

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// labelPattern matches any of the six field names appearing as a text
// label, tolerating snake_case, spaces, or title case, optionally
// followed by a colon or dash. Used by the heuristic extraction tier.
var labelPattern = regexp.MustCompile(`(?i)(presenting[\s_]*complaints|clinical[\s_]*interpretation|relevant[\s_]*medical[\s_]*history|lab[\s_]*report[\s_]*summary|assessment[\s_]*impression|full[\s_]*structured[\s_]*note)\s*[:\-]*\s*`)

var nonLetter = regexp.MustCompile(`[^a-z]`)

// Normalize turns a raw model reply into a complete StructuredNote. It
// never fails: strict JSON extraction first, then heuristic label
// scanning, and as a last resort the entire raw reply is preserved in
// full_structured_note so the model's output is never dropped.
func Normalize(raw string) StructuredNote {
	if note, ok := extractJSON(raw); ok {
		return note
	}
	if note, ok := extractLabeled(raw); ok {
		return note
	}
	return StructuredNote{FullStructuredNote: raw}
}

// extractJSON takes the widest brace-delimited substring of the reply
// and reads the six expected keys from it. Missing keys default to "",
// extra keys are ignored, non-string values are coerced to text.
func extractJSON(raw string) (StructuredNote, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return StructuredNote{}, false
	}
	candidate := raw[start : end+1]
	if !gjson.Valid(candidate) {
		return StructuredNote{}, false
	}
	doc := gjson.Parse(candidate)
	if !doc.IsObject() {
		return StructuredNote{}, false
	}
	return StructuredNote{
		PresentingComplaints:   doc.Get("presenting_complaints").String(),
		ClinicalInterpretation: doc.Get("clinical_interpretation").String(),
		RelevantMedicalHistory: doc.Get("relevant_medical_history").String(),
		LabReportSummary:       doc.Get("lab_report_summary").String(),
		AssessmentImpression:   doc.Get("assessment_impression").String(),
		FullStructuredNote:     doc.Get("full_structured_note").String(),
	}, true
}

// extractLabeled scans the reply for field labels in any order. Each
// captured value runs from the end of its label to the start of the
// next recognized label (or end of text), so replies that emit the
// sections out of canonical order still extract correctly. The first
// occurrence of a label wins.
func extractLabeled(raw string) (StructuredNote, bool) {
	matches := labelPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return StructuredNote{}, false
	}

	values := map[string]string{}
	for i, m := range matches {
		label := canonicalLabel(raw[m[2]:m[3]])
		valueEnd := len(raw)
		if i+1 < len(matches) {
			valueEnd = matches[i+1][0]
		}
		value := cleanCaptured(raw[m[1]:valueEnd])
		if value == "" {
			continue
		}
		if _, seen := values[label]; !seen {
			values[label] = value
		}
	}
	if len(values) == 0 {
		return StructuredNote{}, false
	}

	return StructuredNote{
		PresentingComplaints:   values["presentingcomplaints"],
		ClinicalInterpretation: values["clinicalinterpretation"],
		RelevantMedicalHistory: values["relevantmedicalhistory"],
		LabReportSummary:       values["labreportsummary"],
		AssessmentImpression:   values["assessmentimpression"],
		FullStructuredNote:     values["fullstructurednote"],
	}, true
}

func canonicalLabel(s string) string {
	return nonLetter.ReplaceAllString(strings.ToLower(s), "")
}

// cleanCaptured strips the punctuation and quoting the model tends to
// leave between labeled sections.
func cleanCaptured(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\",'")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "-")
	s = strings.TrimSuffix(s, "*")
	return strings.TrimSpace(s)
}
