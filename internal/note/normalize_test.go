package note

import (
	"testing"
)

func TestNormalize_ValidJSONRoundTrip(t *testing.T) {
	raw := `{"presenting_complaints":"Cough and fever","clinical_interpretation":"Likely viral URTI","relevant_medical_history":"Asthma","lab_report_summary":"CBC unremarkable","assessment_impression":"Viral illness","full_structured_note":"Patient presents with cough and fever."}`

	got := Normalize(raw)

	want := StructuredNote{
		PresentingComplaints:   "Cough and fever",
		ClinicalInterpretation: "Likely viral URTI",
		RelevantMedicalHistory: "Asthma",
		LabReportSummary:       "CBC unremarkable",
		AssessmentImpression:   "Viral illness",
		FullStructuredNote:     "Patient presents with cough and fever.",
	}
	if got != want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestNormalize_JSONWrappedInProse(t *testing.T) {
	raw := "Sure, here is the note you asked for:\n" +
		`{"presenting_complaints":"Headache","full_structured_note":"Patient reports headache."}` +
		"\nLet me know if you need anything else."

	got := Normalize(raw)

	if got.PresentingComplaints != "Headache" {
		t.Errorf("presenting_complaints = %q, want %q", got.PresentingComplaints, "Headache")
	}
	if got.FullStructuredNote != "Patient reports headache." {
		t.Errorf("full_structured_note = %q", got.FullStructuredNote)
	}
}

func TestNormalize_PartialJSONDefaultsMissingKeys(t *testing.T) {
	raw := `{"presenting_complaints":"Chest pain","assessment_impression":"Possible angina"}`

	got := Normalize(raw)

	if got.PresentingComplaints != "Chest pain" {
		t.Errorf("presenting_complaints = %q", got.PresentingComplaints)
	}
	if got.AssessmentImpression != "Possible angina" {
		t.Errorf("assessment_impression = %q", got.AssessmentImpression)
	}
	for name, v := range map[string]string{
		"clinical_interpretation":  got.ClinicalInterpretation,
		"relevant_medical_history": got.RelevantMedicalHistory,
		"lab_report_summary":       got.LabReportSummary,
		"full_structured_note":     got.FullStructuredNote,
	} {
		if v != "" {
			t.Errorf("%s = %q, want empty string", name, v)
		}
	}
}

func TestNormalize_ExtraKeysIgnored(t *testing.T) {
	raw := `{"presenting_complaints":"Fatigue","confidence":0.9,"reasoning":"n/a"}`

	got := Normalize(raw)

	if got.PresentingComplaints != "Fatigue" {
		t.Errorf("presenting_complaints = %q", got.PresentingComplaints)
	}
	if got.ClinicalInterpretation != "" {
		t.Errorf("clinical_interpretation = %q, want empty", got.ClinicalInterpretation)
	}
}

func TestNormalize_NoJSONFallsBackToLabels(t *testing.T) {
	raw := "Presenting Complaints: cough for three days\n" +
		"Clinical Interpretation: consistent with bronchitis\n" +
		"Assessment Impression: acute bronchitis"

	got := Normalize(raw)

	if got.PresentingComplaints != "cough for three days" {
		t.Errorf("presenting_complaints = %q", got.PresentingComplaints)
	}
	if got.ClinicalInterpretation != "consistent with bronchitis" {
		t.Errorf("clinical_interpretation = %q", got.ClinicalInterpretation)
	}
	if got.AssessmentImpression != "acute bronchitis" {
		t.Errorf("assessment_impression = %q", got.AssessmentImpression)
	}
}

func TestNormalize_LabelsOutOfOrder(t *testing.T) {
	raw := "assessment_impression: stable angina\n" +
		"presenting_complaints: exertional chest pain\n" +
		"lab_report_summary: troponin negative"

	got := Normalize(raw)

	if got.AssessmentImpression != "stable angina" {
		t.Errorf("assessment_impression = %q", got.AssessmentImpression)
	}
	if got.PresentingComplaints != "exertional chest pain" {
		t.Errorf("presenting_complaints = %q", got.PresentingComplaints)
	}
	if got.LabReportSummary != "troponin negative" {
		t.Errorf("lab_report_summary = %q", got.LabReportSummary)
	}
}

func TestNormalize_DuplicateLabelFirstWins(t *testing.T) {
	raw := "presenting_complaints: first value\npresenting_complaints: second value"

	got := Normalize(raw)

	if got.PresentingComplaints != "first value" {
		t.Errorf("presenting_complaints = %q, want first occurrence", got.PresentingComplaints)
	}
}

func TestNormalize_NothingUsableKeepsRawVerbatim(t *testing.T) {
	raw := "The patient seems fine overall, nothing to report."

	got := Normalize(raw)

	if got.FullStructuredNote != raw {
		t.Errorf("full_structured_note = %q, want raw reply verbatim", got.FullStructuredNote)
	}
	empty := StructuredNote{FullStructuredNote: raw}
	if got != empty {
		t.Errorf("other fields should be empty, got %+v", got)
	}
}

func TestNormalize_MalformedJSONFallsThrough(t *testing.T) {
	raw := `{"presenting_complaints": "unterminated`

	got := Normalize(raw)

	// Not valid JSON and no clean label sections either: the raw reply
	// must still come back in full_structured_note or via heuristics.
	if got == (StructuredNote{}) {
		t.Error("normalizer must never return a fully empty note for non-empty input")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`{"presenting_complaints":"Cough"}`,
		"presenting complaints: cough\nassessment impression: URTI",
		"free text with no structure at all",
		"",
	}
	for _, raw := range inputs {
		first := Normalize(raw)
		second := Normalize(raw)
		if first != second {
			t.Errorf("Normalize not idempotent for %q: %+v vs %+v", raw, first, second)
		}
	}
}

func TestNormalize_NonStringJSONValuesCoerced(t *testing.T) {
	raw := `{"presenting_complaints": 42, "full_structured_note": "note"}`

	got := Normalize(raw)

	if got.PresentingComplaints != "42" {
		t.Errorf("presenting_complaints = %q, want coerced %q", got.PresentingComplaints, "42")
	}
}
