package prompt

import (
	"bytes"
	"fmt"

	"github.com/arialabs/aria/internal/types"
)

// Render turns an assembled GenerationContext into the prompt text sent
// to the reply model.
func Render(ctx types.GenerationContext) (string, error) {
	var buf bytes.Buffer
	if err := generationTemplate.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to render generation prompt: %w", err)
	}
	return buf.String(), nil
}
