package note

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Generator is the outbound model invoker. Implementations issue one
// synchronous completion call; no retries.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

type Service interface {
	GenerateNote(ctx context.Context, in ClinicalInputs) (*Result, error)
}

type service struct {
	generator Generator
	logger    zerolog.Logger
}

func NewService(generator Generator, logger zerolog.Logger) Service {
	return &service{generator: generator, logger: logger}
}

// GenerateNote runs the pipeline strictly in order: validate, assemble
// context, build prompt, invoke the model, normalize the reply. Every
// value it produces is request-scoped; nothing is shared or persisted.
func (s *service) GenerateNote(ctx context.Context, in ClinicalInputs) (*Result, error) {
	if strings.TrimSpace(in.DoctorKeywords) == "" {
		return nil, errors.Wrap(ErrValidation, "missing required field: doctor_keywords")
	}

	requestID := uuid.New().String()
	start := time.Now()

	clinicalContext := AssembleContext(in)
	prompt := BuildPrompt(clinicalContext)

	s.logger.Debug().
		Str("request_id", requestID).
		Int("context_chars", len(clinicalContext)).
		Msg("invoking generation model")

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().
			Str("request_id", requestID).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("model invocation failed")
		return nil, err
	}

	note := Normalize(raw)

	s.logger.Info().
		Str("request_id", requestID).
		Str("model", s.generator.Model()).
		Dur("elapsed", time.Since(start)).
		Msg("clinical note generated")

	return &Result{
		Note:      note,
		RawReply:  raw,
		Model:     s.generator.Model(),
		RequestID: requestID,
		Duration:  time.Since(start),
	}, nil
}
