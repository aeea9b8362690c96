// Package models adapts chat model providers to the adk model.LLM
// contract consumed by the classifier and the reply generator.
package models

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// openaiModel wraps an OpenAI-compatible chat endpoint. Text-only and
// non-streaming: this service never streams tokens or calls tools.
type openaiModel struct {
	client             *openai.Client
	name               string
	versionHeaderValue string
}

// NewOpenAIModel returns a model.LLM backed by an OpenAI-compatible
// API. baseURL may be empty for the default OpenAI endpoint.
func NewOpenAIModel(modelName, apiKey, baseURL string) (model.LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	headerValue := fmt.Sprintf("aria/%s go/%s",
		"1.0.0", strings.TrimPrefix(runtime.Version(), "go"))

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHeader("user-agent", headerValue),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &openaiModel{
		name:               modelName,
		client:             &client,
		versionHeaderValue: headerValue,
	}, nil
}

func (m *openaiModel) Name() string {
	return m.name
}

func (m *openaiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *openaiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	params := m.buildParams(req)

	resp, err := m.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		slog.Error("failed to call chat API", "model", m.name, "error", err.Error())
		return nil, fmt.Errorf("failed to call chat API: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return &model.LLMResponse{}, nil
	}

	message := resp.Choices[0].Message
	content := &genai.Content{
		Role:  string(message.Role),
		Parts: []*genai.Part{},
	}
	if message.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{Text: message.Content})
	}
	return &model.LLMResponse{Content: content}, nil
}

func (m *openaiModel) buildParams(req *model.LLMRequest) *openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: req.Model,
	}
	if params.Model == "" {
		params.Model = m.name
	}

	for _, content := range req.Contents {
		var sb strings.Builder
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		text := sb.String()

		switch content.Role {
		case "user":
			params.Messages = append(params.Messages, openai.UserMessage(text))
		case "model":
			params.Messages = append(params.Messages, openai.AssistantMessage(text))
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(text))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(text))
		}
	}

	if req.Config != nil {
		if req.Config.Temperature != nil {
			params.Temperature = openai.Float(float64(*req.Config.Temperature))
		}
		if req.Config.MaxOutputTokens > 0 {
			params.MaxTokens = openai.Int(int64(req.Config.MaxOutputTokens))
		}
		if req.Config.TopP != nil {
			params.TopP = openai.Float(float64(*req.Config.TopP))
		}
	}

	return &params
}
