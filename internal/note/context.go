package note

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// AssembleContext flattens the clinical inputs into one labeled text
// block with a fixed section order: keywords, symptoms, history, labs,
// notes. Absent fields contribute no section at all. Pure function.
func AssembleContext(in ClinicalInputs) string {
	var sb strings.Builder

	sb.WriteString("Doctor's Observations/Keywords:\n")
	sb.WriteString(strings.TrimSpace(in.DoctorKeywords))
	sb.WriteString("\n")

	if s := strings.TrimSpace(in.CurrentSymptoms); s != "" {
		sb.WriteString("\nCurrent Symptoms:\n")
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	if in.MedicalHistory.Present() {
		sb.WriteString("\nMedical History:\n")
		sb.WriteString(renderHistory(in.MedicalHistory))
		sb.WriteString("\n")
	}

	if in.LabReports.Present() {
		sb.WriteString("\nLab Reports:\n")
		sb.WriteString(renderLabReports(in.LabReports))
		sb.WriteString("\n")
	}

	if s := strings.TrimSpace(in.AdditionalNotes); s != "" {
		sb.WriteString("\nAdditional Notes:\n")
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderHistory(f FlexibleField) string {
	if !f.Structured() {
		return strings.TrimSpace(f.Text())
	}
	doc := f.Doc()
	if doc.IsObject() {
		var sb strings.Builder
		doc.ForEach(func(key, value gjson.Result) bool {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", humanizeKey(key.String()), scalarOrJSON(value)))
			return true
		})
		return strings.TrimRight(sb.String(), "\n")
	}
	return prettyJSON(doc)
}

func renderLabReports(f FlexibleField) string {
	if !f.Structured() {
		return strings.TrimSpace(f.Text())
	}
	doc := f.Doc()
	if !doc.IsArray() {
		// A single report object is embedded whole.
		return prettyJSON(doc)
	}

	var sb strings.Builder
	n := 0
	doc.ForEach(func(_, entry gjson.Result) bool {
		n++
		name := firstNonEmpty(
			entry.Get("name").String(),
			entry.Get("title").String(),
			entry.Get("report_name").String(),
		)
		if name == "" {
			name = fmt.Sprintf("Unnamed report %d", n)
		}
		sb.WriteString(fmt.Sprintf("Report %d: %s\n", n, name))
		if details := labDetails(entry); details != "" {
			sb.WriteString("  Details: ")
			sb.WriteString(details)
			sb.WriteString("\n")
		}
		return true
	})
	return strings.TrimRight(sb.String(), "\n")
}

// labDetails pulls the optional metadata blob out of a report entry,
// whichever of the common keys it arrived under.
func labDetails(entry gjson.Result) string {
	for _, key := range []string{"details", "summary", "metadata", "data", "result"} {
		v := entry.Get(key)
		if !v.Exists() {
			continue
		}
		if v.Type == gjson.String {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
			continue
		}
		return v.Raw
	}
	return ""
}

func prettyJSON(doc gjson.Result) string {
	return strings.TrimRight(string(pretty.Pretty([]byte(doc.Raw))), "\n")
}

// humanizeKey turns snake_case record keys into readable labels.
func humanizeKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func scalarOrJSON(v gjson.Result) string {
	if v.IsObject() || v.IsArray() {
		return v.Raw
	}
	return v.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
