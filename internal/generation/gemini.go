package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"medsumm/internal/config"
)

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel    = "gemini-2.5-flash"
	geminiKeyHeader       = "x-goog-api-key"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
}

type gemini struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

// NewGemini returns a Generator calling the Gemini generateContent REST endpoint.
func NewGemini(cfg config.GenerationConfig, log *zap.Logger) Generator {
	if log == nil {
		log = zap.NewNop()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}
	return &gemini{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		model:    model,
		endpoint: endpoint,
		client: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

func (g *gemini) Generate(ctx context.Context, req Request) Result {
	if g.apiKey == "" {
		return Result{
			Outcome: OutcomeCredentialMissing,
			Text:    "Error: Missing GEMINI_API_KEY in server environment.",
			Reason:  "GEMINI_API_KEY is not set",
		}
	}
	req = req.withDefaults()

	payload := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.User}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     *req.Temperature,
			MaxOutputTokens: req.MaxOutputTokens,
		},
	}
	if req.System != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return unexpected(err)
	}

	// The key travels in a header; the URL ends up in trace spans.
	u := fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, url.PathEscape(g.model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return unexpected(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(geminiKeyHeader, g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.log.Error("request to gemini failed", zap.Error(err))
		return networkError("Gemini", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		g.log.Error("reading gemini response failed", zap.Error(err))
		return networkError("Gemini", err)
	}
	g.log.Debug("gemini response", zap.Int("status", resp.StatusCode), zap.String("body", truncate(string(respBody), 1000)))

	return parseGeminiResponse(resp.StatusCode, respBody)
}

func parseGeminiResponse(status int, body []byte) Result {
	if !gjson.ValidBytes(body) {
		if status >= http.StatusBadRequest {
			return upstreamError("Gemini", http.StatusText(status))
		}
		return unexpected(errors.New("invalid JSON response from Gemini"))
	}

	if status < http.StatusBadRequest {
		candidates := gjson.GetBytes(body, "candidates").Array()
		if len(candidates) > 0 {
			first := candidates[0]
			if text := first.Get("content.parts.0.text"); text.Exists() {
				return Result{Outcome: OutcomeOK, Text: text.String()}
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, []byte(first.Raw), "", "  "); err != nil {
				return Result{Outcome: OutcomeFallback, Text: first.Raw, Reason: "candidate has no text part"}
			}
			return Result{Outcome: OutcomeFallback, Text: pretty.String(), Reason: "candidate has no text part"}
		}
	}

	msg := gjson.GetBytes(body, "error.message").String()
	if msg == "" {
		msg = "Unknown error from Gemini."
	}
	return upstreamError("Gemini", msg)
}

func upstreamError(provider, msg string) Result {
	return Result{
		Outcome: OutcomeUpstreamError,
		Text:    fmt.Sprintf("%s API Error: %s", provider, msg),
		Reason:  msg,
	}
}

func networkError(provider string, err error) Result {
	return Result{
		Outcome: OutcomeNetworkError,
		Text:    fmt.Sprintf("Error connecting to %s API: %s", provider, err.Error()),
		Reason:  err.Error(),
	}
}

func unexpected(err error) Result {
	return Result{
		Outcome: OutcomeUpstreamError,
		Text:    "Unexpected error: " + err.Error(),
		Reason:  err.Error(),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
