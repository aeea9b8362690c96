package models

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/arialabs/aria/internal/prompt"
	"github.com/arialabs/aria/internal/types"
)

// Generator produces the agent reply from an assembled generation
// context.
type Generator struct {
	model       model.LLM
	temperature float32
	maxTokens   int32
}

// NewGenerator returns a Generator over the given model.
func NewGenerator(m model.LLM) *Generator {
	return &Generator{
		model:       m,
		temperature: 0.8,
		maxTokens:   1500,
	}
}

// Generate renders the context into the layered prompt and collects a
// single reply.
func (g *Generator) Generate(ctx context.Context, genCtx types.GenerationContext) (string, error) {
	if g == nil || g.model == nil {
		return "", fmt.Errorf("generator not configured")
	}

	text, err := prompt.Render(genCtx)
	if err != nil {
		return "", err
	}

	temperature := g.temperature
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(text, "user"),
		},
		Config: &genai.GenerateContentConfig{
			Temperature:     &temperature,
			MaxOutputTokens: g.maxTokens,
		},
	}

	seq := g.model.GenerateContent(ctx, req, false)
	var resp *model.LLMResponse
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return "", err
	}

	reply := strings.TrimSpace(ExtractResponseText(resp))
	if reply == "" {
		return "", fmt.Errorf("empty model response")
	}
	return reply, nil
}
