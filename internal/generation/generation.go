package generation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"medsumm/internal/config"
)

// Default sampling settings used when a Request leaves them unset.
const (
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 1200
)

// Request is a role-separated prompt plus generation settings.
// A nil Temperature means DefaultTemperature; Float(0) asks for greedy sampling.
type Request struct {
	System          string
	User            string
	Temperature     *float64
	MaxOutputTokens int
}

// Float returns a pointer to v, for Request.Temperature.
func Float(v float64) *float64 {
	return &v
}

func (r Request) withDefaults() Request {
	if r.Temperature == nil {
		r.Temperature = Float(DefaultTemperature)
	}
	if r.MaxOutputTokens <= 0 {
		r.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return r
}

// Outcome tags how a generation call ended.
type Outcome string

const (
	// OutcomeOK carries the first candidate's text.
	OutcomeOK Outcome = "ok"
	// OutcomeFallback carries a JSON dump of the first candidate, whose text field was missing.
	OutcomeFallback Outcome = "fallback"
	// OutcomeCredentialMissing means no API key is configured; no call was made.
	OutcomeCredentialMissing Outcome = "credential_missing"
	// OutcomeUpstreamError means the service answered with an error.
	OutcomeUpstreamError Outcome = "upstream_error"
	// OutcomeNetworkError means the call itself failed.
	OutcomeNetworkError Outcome = "network_error"
)

// Result is the tagged outcome of a generation call. Text always holds a
// printable rendering, so failure results can still be shown to a user.
type Result struct {
	Outcome Outcome
	Text    string
	Reason  string
}

// OK reports whether Text came from the model rather than from a failure.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK || r.Outcome == OutcomeFallback
}

// Generator submits prompts to a hosted text generation endpoint.
type Generator interface {
	Generate(ctx context.Context, req Request) Result
}

// New builds the Generator selected by cfg.Provider.
func New(cfg config.GenerationConfig, log *zap.Logger) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		return NewGemini(cfg, log), nil
	case ProviderOpenAI, ProviderAnthropic:
		return NewJet(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
}

// Provider names.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DisplayName returns the human-readable name of a provider.
func DisplayName(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	default:
		return "Gemini"
	}
}
