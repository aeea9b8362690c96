package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/arialabs/aria/internal/types"
)

// Classifier labels user utterances with an emotion via an LLM.
type Classifier struct {
	model model.LLM
}

// NewClassifier returns a Classifier backed by the given model.
func NewClassifier(m model.LLM) *Classifier {
	return &Classifier{model: m}
}

var classifyInstruction = fmt.Sprintf(`You are an emotion classifier. Classify the dominant emotion of the user's message.
Pick exactly one label from: %s.
Return a valid JSON object of the form {"label": "<label>", "confidence": <0.0-1.0>} and nothing else.`, vocabularyList())

func vocabularyList() string {
	labels := Vocabulary()
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = string(label)
	}
	return strings.Join(parts, ", ")
}

type classifyResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classify returns the emotion label and a confidence in [0,1] for text.
// Blank input, unparseable model output, and labels outside the supported
// vocabulary all fall back to neutral so a turn is never blocked on
// classification.
func (c *Classifier) Classify(ctx context.Context, text string) (types.EmotionLabel, float64, error) {
	if c == nil || c.model == nil {
		return types.EmotionNeutral, 0, fmt.Errorf("emotion classifier not configured")
	}
	if strings.TrimSpace(text) == "" {
		return types.EmotionNeutral, 0, nil
	}

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(classifyInstruction, "system"),
			genai.NewContentFromText(text, "user"),
		},
	}

	seq := c.model.GenerateContent(ctx, req, false)
	var resp *model.LLMResponse
	var err error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return types.EmotionNeutral, 0, err
	}

	result, ok := parseClassification(extractText(resp))
	if !ok {
		return types.EmotionNeutral, 0.1, nil
	}

	label := types.EmotionLabel(strings.ToLower(strings.TrimSpace(result.Label)))
	// A label outside the supported vocabulary means the model ignored
	// the instruction; treat it like unparseable output.
	if !Known(label) {
		return types.EmotionNeutral, 0.1, nil
	}
	confidence := result.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return label, confidence, nil
}

// parseClassification extracts the JSON object from the model output,
// tolerating surrounding prose or code fences.
func parseClassification(raw string) (classifyResult, bool) {
	clean := strings.TrimSpace(raw)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}
	var result classifyResult
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return classifyResult{}, false
	}
	return result, true
}

func extractText(resp *model.LLMResponse) string {
	if resp == nil || resp.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
