package note

import (
	"time"
)

// ClinicalInputs is the caller-supplied payload for note generation.
// Only DoctorKeywords is required; every other field is independently
// optional and a malformed optional field must never fail the request.
type ClinicalInputs struct {
	DoctorKeywords  string        `json:"doctor_keywords"`
	MedicalHistory  FlexibleField `json:"medical_history,omitempty"`
	LabReports      FlexibleField `json:"lab_reports,omitempty"`
	CurrentSymptoms string        `json:"current_symptoms,omitempty"`
	AdditionalNotes string        `json:"additional_notes,omitempty"`
}

// StructuredNote is the normalized six-field clinical note. All six
// keys are always present in the JSON encoding; a field the model did
// not produce is an empty string, never null or omitted.
type StructuredNote struct {
	PresentingComplaints   string `json:"presenting_complaints"`
	ClinicalInterpretation string `json:"clinical_interpretation"`
	RelevantMedicalHistory string `json:"relevant_medical_history"`
	LabReportSummary       string `json:"lab_report_summary"`
	AssessmentImpression   string `json:"assessment_impression"`
	FullStructuredNote     string `json:"full_structured_note"`
}

type Metadata struct {
	Model      string `json:"model"`
	Timestamp  string `json:"timestamp"`
	DurationMs int64  `json:"duration_ms"`
	RequestID  string `json:"request_id"`
}

type GenerateResponse struct {
	Success          bool           `json:"success"`
	StructuredOutput StructuredNote `json:"structured_output"`
	RawResponse      string         `json:"raw_response"`
	Metadata         Metadata       `json:"metadata"`
}

type ErrorResponse struct {
	Success         bool              `json:"success"`
	Error           string            `json:"error"`
	Details         string            `json:"details,omitempty"`
	Troubleshooting map[string]string `json:"troubleshooting,omitempty"`
}

// Result is the outcome of one successful pipeline run.
type Result struct {
	Note      StructuredNote
	RawReply  string
	Model     string
	RequestID string
	Duration  time.Duration
}

// NewGenerateResponse builds the shared success envelope used by both
// the HTTP route and the tool transport.
func NewGenerateResponse(res *Result) GenerateResponse {
	return GenerateResponse{
		Success:          true,
		StructuredOutput: res.Note,
		RawResponse:      res.RawReply,
		Metadata: Metadata{
			Model:      res.Model,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			DurationMs: res.Duration.Milliseconds(),
			RequestID:  res.RequestID,
		},
	}
}
