package note

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// PDFRenderer renders a structured note into a downloadable document.
type PDFRenderer interface {
	RenderNote(note StructuredNote, patientRef string) ([]byte, error)
}

type Handler struct {
	svc       Service
	pdf       PDFRenderer
	ollamaURL string
	model     string
}

func NewHandler(svc Service, pdf PDFRenderer, ollamaURL, model string) *Handler {
	return &Handler{svc: svc, pdf: pdf, ollamaURL: ollamaURL, model: model}
}

func (h *Handler) GenerateClinicalNote(w http.ResponseWriter, r *http.Request) {
	var in ClinicalInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error(), nil)
		return
	}

	res, err := h.svc.GenerateNote(r.Context(), in)
	if err != nil {
		h.writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewGenerateResponse(res))
}

// writeGenerateError maps the classified pipeline failures onto the
// error envelope. Validation never reached the model and is the
// caller's fault; everything else is a 500 with remediation hints.
func (h *Handler) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, "Missing required field: doctor_keywords", err.Error(), nil)
	case errors.Is(err, ErrServiceUnavailable):
		writeError(w, http.StatusInternalServerError, "Generation service unavailable", err.Error(), Troubleshooting(err, h.model))
	case errors.Is(err, ErrTimeout):
		writeError(w, http.StatusInternalServerError, "Generation request timed out", err.Error(), Troubleshooting(err, h.model))
	default:
		writeError(w, http.StatusInternalServerError, "Clinical note generation failed", err.Error(), nil)
	}
}

type pdfRequest struct {
	PatientRef string         `json:"patient_ref"`
	Note       StructuredNote `json:"note"`
}

func (h *Handler) RenderNotePDF(w http.ResponseWriter, r *http.Request) {
	var req pdfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error(), nil)
		return
	}
	if req.Note == (StructuredNote{}) {
		writeError(w, http.StatusBadRequest, "Missing required field: note", "the note object must carry at least one populated field", nil)
		return
	}

	data, err := h.pdf.RenderNote(req.Note, req.PatientRef)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "PDF rendering failed", err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="clinical-note.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Health reports static configuration without touching the model.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"message":   "clinical note bridge is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"ollama": map[string]string{
			"url":   h.ollamaURL,
			"model": h.model,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg, details string, troubleshooting map[string]string) {
	writeJSON(w, status, ErrorResponse{
		Success:         false,
		Error:           msg,
		Details:         details,
		Troubleshooting: troubleshooting,
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/generate-clinical-note", h.GenerateClinicalNote)
	r.Post("/clinical-note/pdf", h.RenderNotePDF)
}
