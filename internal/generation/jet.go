package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
	"go.uber.org/zap"

	"medsumm/internal/config"
)

// jetGenerator calls OpenAI or Anthropic models through the jetify ai SDK.
type jetGenerator struct {
	provider string
	display  string
	model    jetapi.LanguageModel
	cfg      config.GenerationConfig
	log      *zap.Logger
}

// NewJet returns a Generator for the openai or anthropic provider. A missing
// API key is not an error here; Generate reports it as OutcomeCredentialMissing.
func NewJet(cfg config.GenerationConfig, log *zap.Logger) (Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	g := &jetGenerator{provider: provider, display: DisplayName(provider), cfg: cfg, log: log}

	apiKey := strings.TrimSpace(cfg.APIKey)
	modelID := strings.TrimSpace(cfg.Model)
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")

	switch provider {
	case ProviderAnthropic:
		if modelID == "" {
			modelID = "claude-haiku-4-5-20251001"
		}
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(endpoint))
		}
		client := anthropicclient.NewClient(opts...)
		g.model = jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client))
	case ProviderOpenAI:
		if modelID == "" {
			modelID = "gpt-4o-mini"
		}
		opts := []openaioption.RequestOption{
			openaioption.WithAPIKey(apiKey),
			openaioption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, openaioption.WithBaseURL(endpoint))
		}
		client := openaiclient.NewClient(opts...)
		g.model = jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client))
	default:
		return nil, errors.New("unsupported provider for jetify ai: " + cfg.Provider)
	}
	return g, nil
}

func (g *jetGenerator) Generate(ctx context.Context, req Request) Result {
	if strings.TrimSpace(g.cfg.APIKey) == "" {
		return Result{
			Outcome: OutcomeCredentialMissing,
			Text:    "Error: Missing " + g.display + " API key in server environment.",
			Reason:  "GENERATION_API_KEY is not set",
		}
	}
	req = req.withDefaults()

	// A zero timeout means none, as for the Gemini client.
	if timeout := g.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := jetai.GenerateText(
		ctx,
		buildMessages(req.System, req.User),
		jetai.WithModel(g.model),
		jetai.WithMaxOutputTokens(req.MaxOutputTokens),
		jetai.WithTemperature(*req.Temperature),
	)
	if err != nil {
		g.log.Error("generation request failed", zap.String("provider", g.provider), zap.Error(err))
		var netErr net.Error
		if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
			return networkError(g.display, err)
		}
		return upstreamError(g.display, err.Error())
	}
	if resp == nil {
		return upstreamError(g.display, "empty response")
	}

	var full strings.Builder
	for _, block := range resp.Content {
		if tb, ok := block.(*jetapi.TextBlock); ok {
			full.WriteString(tb.Text)
		}
	}
	if full.Len() > 0 {
		return Result{Outcome: OutcomeOK, Text: full.String()}
	}

	dump, err := json.MarshalIndent(resp.Content, "", "  ")
	if err != nil {
		return unexpected(err)
	}
	return Result{Outcome: OutcomeFallback, Text: string(dump), Reason: "response has no text block"}
}

func buildMessages(system, user string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: system})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(user)})
	return messages
}
