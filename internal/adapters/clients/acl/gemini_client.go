package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/logging"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// GeminiServiceName names the generative API in logs, spans and errors.
const GeminiServiceName = "generative-api"

const (
	geminiRoleUser  = "user"
	opGenerate      = "generate content"
	geminiPathFmt   = "/v1beta/models/%s:generateContent"
	geminiAPIKeyArg = "key"
)

// Wire types of the generateContent call. They stay in this file.
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string        `json:"role,omitempty"`
	Parts []*geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []*geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// firstText walks candidates[0].content.parts[0].text.
func (r *geminiResponse) firstText() (string, bool) {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0] == nil {
		return "", false
	}

	c := r.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 || c.Parts[0] == nil || c.Parts[0].Text == "" {
		return "", false
	}

	return c.Parts[0].Text, true
}

// GeminiClient implements ports.TextGenerator against generateContent.
type GeminiClient struct {
	BaseAdapter

	path   string
	logger *slog.Logger
}

var (
	_ ports.TextGenerator = (*GeminiClient)(nil)
	_ ports.HealthChecker = (*GeminiClient)(nil)
)

// NewGeminiClient calls model through client. The API key is attached by the
// client's AuthFunc; see APIKeyAuth.
func NewGeminiClient(client *clients.Client, model string, logger *slog.Logger) *GeminiClient {
	if logger == nil {
		logger = slog.Default()
	}

	return &GeminiClient{
		BaseAdapter: NewBaseAdapter(client, GeminiServiceName),
		path:        fmt.Sprintf(geminiPathFmt, url.PathEscape(model)),
		logger:      logger.With(slog.String("component", "acl.GeminiClient")),
	}
}

// APIKeyAuth adds the key query parameter. An empty key adds nothing.
func APIKeyAuth(apiKey string) func(*http.Request) {
	return func(r *http.Request) {
		if apiKey == "" {
			return
		}

		q := r.URL.Query()
		q.Set(geminiAPIKeyArg, apiKey)
		r.URL.RawQuery = q.Encode()
	}
}

// GenerateText sends prompt as a single user turn and returns the first
// candidate's text.
//
// A JSON body with no candidate text, whatever the status, is reported as
// domain.ErrMalformedGeneration. That includes valid JSON of the wrong shape,
// such as an array or a string. Every other failure (no response, an open
// circuit, a body that is not JSON at all) is returned as is.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []*geminiContent{{
			Role:  geminiRoleUser,
			Parts: []*geminiPart{{Text: prompt}},
		}},
	}

	ex, err := g.PostJSON(ctx, g.path, payload, opGenerate)
	if err != nil {
		return "", err
	}

	logging.Trace(ctx, g.logger, "generative response",
		slog.Int("status", ex.Status),
		slog.String("body", string(ex.Body)),
	)

	resp, err := Decode[geminiResponse](ex.Body)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return "", fmt.Errorf("%w: %s: %w", domain.ErrMalformedGeneration, g.ServiceName(), err)
		}

		return "", fmt.Errorf("%s: %w", g.ServiceName(), err)
	}

	text, ok := resp.firstText()
	if ok {
		return text, nil
	}

	if !ex.OK() {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedGeneration,
			MapStatus(ex.Status, ex.Body, g.ServiceName(), opGenerate))
	}

	return "", fmt.Errorf("%w: response has no candidate text", domain.ErrMalformedGeneration)
}

// Name implements ports.HealthChecker.
func (g *GeminiClient) Name() string {
	return GeminiServiceName
}

// Check fails while the circuit is open. It does not call the API.
func (g *GeminiClient) Check(context.Context) error {
	if g.Client().CircuitState() == clients.StateOpen {
		return domain.NewUnavailableError(g.ServiceName(), "circuit breaker open")
	}

	return nil
}
