package llm

import (
	"context"
	"fmt"
	"strings"

	"wanderplan/internal/models/request_models"
	"wanderplan/pkg/utils"
)

const (
	ProviderBailian = "bailian"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderMock    = "mock"
)

var Providers = []string{ProviderBailian, ProviderOpenAI, ProviderGemini, ProviderMock}

const (
	BailianBaseURL      = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	DefaultBailianModel = "qwen-plus"
	DefaultOpenAIModel  = "gpt-4o-mini"
	DefaultGeminiModel  = "gemini-1.5-flash"
)

// RawCandidate is the decoded top-level JSON object a provider returned.
// Nothing about it is trusted until the validator has seen it.
type RawCandidate map[string]interface{}

// ItineraryClient performs exactly one generation call against an upstream service.
type ItineraryClient interface {
	Generate(ctx context.Context, req request_models.GenerationRequest) (RawCandidate, error)
	Name() string
	Close() error
}

type ProviderConfig struct {
	Provider string

	BailianAPIKey string
	BailianModel  string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	GeminiAPIKey string
	GeminiModel  string
}

// IsKnownProvider reports whether name selects one of the built-in variants.
func IsKnownProvider(name string) bool {
	for _, p := range Providers {
		if p == strings.ToLower(strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// NewItineraryClient picks the variant named by cfg.Provider. Missing credentials are a
// caller fault and come back as BAD_REQUEST without any network activity.
func NewItineraryClient(ctx context.Context, cfg ProviderConfig) (ItineraryClient, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderBailian
	}

	switch provider {
	case ProviderBailian:
		if strings.TrimSpace(cfg.BailianAPIKey) == "" {
			return nil, utils.NewBadRequestError("BAILIAN_API_KEY is required")
		}
		return NewOpenAICompatibleClient(ProviderBailian, cfg.BailianAPIKey, BailianBaseURL, withDefault(cfg.BailianModel, DefaultBailianModel)), nil
	case ProviderOpenAI:
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, utils.NewBadRequestError("OPENAI_API_KEY is required")
		}
		return NewOpenAICompatibleClient(ProviderOpenAI, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, withDefault(cfg.OpenAIModel, DefaultOpenAIModel)), nil
	case ProviderGemini:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return nil, utils.NewBadRequestError("GEMINI_API_KEY is required")
		}
		client, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, withDefault(cfg.GeminiModel, DefaultGeminiModel))
		if err != nil {
			return nil, utils.NewInternalError("failed to create Gemini client", err)
		}
		return client, nil
	case ProviderMock:
		return NewMockClient(), nil
	default:
		return nil, utils.NewBadRequestError(fmt.Sprintf("unsupported LLM provider: %s", cfg.Provider))
	}
}

func withDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
