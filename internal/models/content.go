package models

import (
	"strings"

	"google.golang.org/adk/model"
)

// ExtractResponseText concatenates the text parts of a model response.
func ExtractResponseText(resp *model.LLMResponse) string {
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
