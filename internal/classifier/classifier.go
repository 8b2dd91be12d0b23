package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is where the classification service listens out of the box.
const DefaultEndpoint = "http://localhost:5000"

// ErrMalformedResponse is returned when the service answers with a body that
// carries neither a classification nor an error.
var ErrMalformedResponse = errors.New("classifier: response carries neither classification nor error")

// Config describes how to reach the classification service.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the remote classification service.
type Client interface {
	Analyze(ctx context.Context, text string) (*Response, error)
	Health(ctx context.Context) (*Health, error)
	Name() string
}

// Result is the category and suggested reply produced for one e-mail.
type Result struct {
	Category          string `json:"category"`
	SuggestedResponse string `json:"suggested_response"`
	// Error is set by the service when its upstream model call failed.
	Error any `json:"error,omitempty"`
}

// Response mirrors the body returned by POST /analyze.
type Response struct {
	Error          any     `json:"error,omitempty"`
	Classification *Result `json:"classification,omitempty"`
	Snippet        string  `json:"original_text_snippet,omitempty"`
}

// Failure reports the remote error message, if the service signalled one.
func (r *Response) Failure() (string, bool) {
	if r == nil {
		return "", false
	}
	if truthy(r.Error) {
		return describe(r.Error), true
	}
	if r.Classification != nil && truthy(r.Classification.Error) {
		return describe(r.Classification.Error), true
	}
	return "", false
}

// Health mirrors the body returned by GET /health.
type Health struct {
	Status        string `json:"status"`
	GeminiEnabled bool   `json:"gemini_enabled"`
}

// OK reports whether the service declared itself healthy.
func (h *Health) OK() bool {
	return h != nil && strings.EqualFold(h.Status, "ok")
}

// New builds an HTTP-backed client for the configured endpoint.
func New(cfg Config) (Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid classifier endpoint %q: %w", endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid classifier endpoint %q: scheme must be http or https", endpoint)
	}
	return &httpClient{
		endpoint: endpoint,
		client:   pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}, nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	// Zero timeout waits until the service answers; callers cancel through the context.
	return &http.Client{Timeout: timeout}
}

// truthy follows JSON/JavaScript truthiness for decoded values.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case bool:
		return value
	case float64:
		return value != 0 && !math.IsNaN(value)
	default:
		return true
	}
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}
