package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/signintech/gopdf"

	"clinical-note-bridge/internal/note"
)

// Service renders structured clinical notes as PDF documents. Nothing
// is stored; the bytes go straight back to the caller.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

type section struct {
	title string
	body  string
}

func (s *Service) RenderNote(n note.StructuredNote, patientRef string) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// Try multiple common paths for DejaVuSans (Debian/Alpine layouts)
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, errors.Wrap(fontErr, "failed to load font for PDF, ensure DejaVuSans is installed")
	}

	if err := pdf.SetFont("DejaVu", "", 18); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Clinical Note")
	pdf.Br(28)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Generated: %s", time.Now().Format("02 Jan 2006 15:04")))
	pdf.Br(14)
	if patientRef != "" {
		pdf.Cell(nil, fmt.Sprintf("Patient: %s", patientRef))
		pdf.Br(14)
	}
	pdf.Br(8)

	sections := []section{
		{"Presenting Complaints", n.PresentingComplaints},
		{"Clinical Interpretation", n.ClinicalInterpretation},
		{"Relevant Medical History", n.RelevantMedicalHistory},
		{"Lab Report Summary", n.LabReportSummary},
		{"Assessment / Impression", n.AssessmentImpression},
		{"Full Structured Note", n.FullStructuredNote},
	}

	for _, sec := range sections {
		if sec.body == "" {
			continue
		}
		if err := pdf.SetFont("DejaVu", "", 13); err != nil {
			return nil, err
		}
		pdf.Cell(nil, sec.title)
		pdf.Br(16)

		if err := pdf.SetFont("DejaVu", "", 10); err != nil {
			return nil, err
		}
		lines, _ := pdf.SplitText(sec.body, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(10)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write PDF")
	}
	return buf.Bytes(), nil
}
