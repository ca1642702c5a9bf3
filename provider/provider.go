package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/legalsahayak/sahayak/config"
	"github.com/legalsahayak/sahayak/provider/gemini"
	"github.com/legalsahayak/sahayak/provider/openai"
)

// Provider is the interface every generative/embedding backend must satisfy.
// Generate returns free text. GenerateJSON asks the model for output
// constrained by the given JSON schema and guarantees the returned payload is
// valid JSON; required-field validation is left to the caller.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (json.RawMessage, error)
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	EmbeddingDim() int
}

// NewProvider creates a provider from configuration.
func NewProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %q: api key not configured", cfg.Type)
	}
	switch cfg.Type {
	case "gemini", "":
		return gemini.NewClient(gemini.Config{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			GenerationModel: cfg.GenerationModel,
			EmbeddingModel:  cfg.EmbeddingModel,
			EmbeddingDim:    cfg.EmbeddingDim,
			Temperature:     cfg.Temperature,
			MaxTokens:       cfg.MaxTokens,
			Timeout:         cfg.Timeout,
		}), nil
	case "openai":
		return openai.NewClient(openai.Config{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			GenerationModel: cfg.GenerationModel,
			EmbeddingModel:  cfg.EmbeddingModel,
			EmbeddingDim:    cfg.EmbeddingDim,
			Temperature:     cfg.Temperature,
			MaxTokens:       cfg.MaxTokens,
			Timeout:         cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Type)
	}
}
