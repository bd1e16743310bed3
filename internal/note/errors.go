package note

import (
	"github.com/pkg/errors"
)

// Pipeline failure taxonomy. The model invoker wraps its transport
// failures around one of these sentinels so transports can map them
// without string matching.
var (
	ErrValidation         = errors.New("validation failed")
	ErrServiceUnavailable = errors.New("generation service unavailable")
	ErrTimeout            = errors.New("generation request timed out")
	ErrGenerationFailed   = errors.New("generation failed")
)

// Troubleshooting returns remediation hints for a classified failure,
// or nil when there is nothing actionable to suggest.
func Troubleshooting(err error, model string) map[string]string {
	switch {
	case errors.Is(err, ErrServiceUnavailable):
		return map[string]string{
			"check":      "Is the Ollama service running?",
			"start":      "Run 'ollama serve' on the host configured in OLLAMA_URL.",
			"pull_model": "Run 'ollama pull " + model + "' if the model is not installed.",
		}
	case errors.Is(err, ErrTimeout):
		return map[string]string{
			"check":   "The model did not reply within the configured timeout.",
			"timeout": "Raise REQUEST_TIMEOUT_SECONDS or use a smaller model.",
		}
	default:
		return nil
	}
}
