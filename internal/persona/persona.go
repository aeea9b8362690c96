// Package persona loads and queries the static character definition.
package persona

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/arialabs/aria/internal/types"
)

// Load reads a persona definition from a TOML file. An empty path
// yields the built-in default persona.
func Load(path string) (types.CharacterPersona, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.CharacterPersona{}, fmt.Errorf("failed to read persona file '%s': %w", path, err)
	}

	var p types.CharacterPersona
	if err := toml.Unmarshal(data, &p); err != nil {
		return types.CharacterPersona{}, fmt.Errorf("failed to parse persona TOML: %w", err)
	}
	if p.Name == "" {
		return types.CharacterPersona{}, fmt.Errorf("persona name must not be empty")
	}
	normalize(&p)
	return p, nil
}

// ResponsePattern returns the persona's pattern for the given emotion,
// or a default pattern with baseline empathy when the emotion is not in
// the mapping. An unrecognized emotion never blocks a response.
func ResponsePattern(p types.CharacterPersona, label types.EmotionLabel) types.EmotionalResponsePattern {
	if pattern, ok := p.ResponsePatterns[label]; ok {
		return pattern
	}
	return types.EmotionalResponsePattern{
		Emotion:       label,
		EmpathyLevel:  p.EmpathyBaseline,
		ResponseStyle: "supportive and understanding",
		ExamplePhrases: []string{
			"I understand.",
			"Tell me more about that.",
		},
	}
}

// normalize clamps scalar fields and aligns each pattern's emotion key
// with its map entry.
func normalize(p *types.CharacterPersona) {
	p.EmotionalIntelligence = clamp01(p.EmotionalIntelligence)
	p.EmpathyBaseline = clamp01(p.EmpathyBaseline)
	for label, pattern := range p.ResponsePatterns {
		pattern.Emotion = label
		pattern.EmpathyLevel = clamp01(pattern.EmpathyLevel)
		p.ResponsePatterns[label] = pattern
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
