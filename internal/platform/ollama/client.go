package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"clinical-note-bridge/internal/note"
)

// Client talks to a local Ollama-compatible generation endpoint. One
// synchronous call per request, full reply awaited (stream disabled),
// bounded by the configured timeout. No retries: a failed generation
// fails the whole request.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	topP        float64
	httpClient  *http.Client
}

func NewClient(baseURL, model string, timeout time.Duration, temperature, topP float64) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		topP:        topP,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Model() string { return c.model }

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate posts the prompt to {base}/api/generate and returns the raw
// reply text. Transport failures are classified onto the note package
// sentinels so callers can distinguish an unreachable runtime from a
// timeout from everything else.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.temperature,
			TopP:        c.topP,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(note.ErrGenerationFailed, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", errors.Wrap(note.ErrGenerationFailed, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", errors.Wrapf(note.ErrGenerationFailed, "ollama returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(note.ErrGenerationFailed, "decoding ollama response: "+err.Error())
	}
	if result.Error != "" {
		return "", errors.Wrap(note.ErrGenerationFailed, result.Error)
	}

	return result.Response, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(note.ErrTimeout, err.Error())
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.Wrap(note.ErrTimeout, err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(note.ErrTimeout, err.Error())
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return errors.Wrap(note.ErrServiceUnavailable, err.Error())
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		// Unreachable host or refused connection: the model runtime
		// is not listening where OLLAMA_URL points.
		return errors.Wrap(note.ErrServiceUnavailable, err.Error())
	}
	return errors.Wrap(note.ErrGenerationFailed, err.Error())
}
