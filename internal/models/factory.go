package models

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// New returns a model.LLM for the configured provider. Supported
// providers: "openai", "xai", "gemini".
func New(ctx context.Context, provider, modelName, apiKey, baseURL string) (model.LLM, error) {
	switch provider {
	case "openai":
		return NewOpenAIModel(modelName, apiKey, baseURL)
	case "xai":
		if baseURL == "" {
			baseURL = "https://api.x.ai/v1"
		}
		return NewOpenAIModel(modelName, apiKey, baseURL)
	case "gemini":
		return gemini.NewModel(ctx, modelName, &genai.ClientConfig{
			APIKey: apiKey,
		})
	default:
		return nil, fmt.Errorf("unknown chat provider: %s", provider)
	}
}
