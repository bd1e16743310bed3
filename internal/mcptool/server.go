// Package mcptool exposes the note pipeline as an MCP tool so agent
// frameworks can invoke the same operation the HTTP route serves.
package mcptool

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"clinical-note-bridge/internal/note"
)

const toolName = "generate_clinical_note"

// NewServer builds an MCP server with the clinical note tool
// registered. The tool funnels into the exact same note.Service as the
// HTTP endpoint; there is no second copy of the pipeline.
func NewServer(svc note.Service, version string) *server.MCPServer {
	s := server.NewMCPServer("clinical-note-bridge", version,
		server.WithToolCapabilities(false),
	)

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Generate a structured six-field clinical note from doctor observations plus optional medical history and lab reports."),
		mcp.WithString("doctor_keywords",
			mcp.Required(),
			mcp.Description("Free-text clinical observations from the doctor."),
		),
		mcp.WithString("medical_history",
			mcp.Description("Optional medical history: plain text or a JSON-encoded record."),
		),
		mcp.WithString("lab_reports",
			mcp.Description("Optional lab reports: plain text, a JSON-encoded report object, or an array of report objects."),
		),
		mcp.WithString("current_symptoms",
			mcp.Description("Optional free-text description of current symptoms."),
		),
		mcp.WithString("additional_notes",
			mcp.Description("Optional free-text additional notes."),
		),
	)

	s.AddTool(tool, generateHandler(svc))
	return s
}

func generateHandler(svc note.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keywords, err := req.RequireString("doctor_keywords")
		if err != nil {
			return mcp.NewToolResultError("Missing required field: doctor_keywords"), nil
		}

		in := note.ClinicalInputs{
			DoctorKeywords:  keywords,
			MedicalHistory:  note.NewFlexibleField(req.GetString("medical_history", "")),
			LabReports:      note.NewFlexibleField(req.GetString("lab_reports", "")),
			CurrentSymptoms: req.GetString("current_symptoms", ""),
			AdditionalNotes: req.GetString("additional_notes", ""),
		}

		res, err := svc.GenerateNote(ctx, in)
		if err != nil {
			if errors.Is(err, note.ErrValidation) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultError("clinical note generation failed: " + err.Error()), nil
		}

		payload, err := json.Marshal(note.NewGenerateResponse(res))
		if err != nil {
			return nil, errors.Wrap(err, "encoding tool result")
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// NewHTTPHandler wraps the MCP server for mounting on the main router.
func NewHTTPHandler(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s)
}
