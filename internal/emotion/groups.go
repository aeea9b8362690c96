// Package emotion provides emotion classification and the pairwise
// similarity model used by retrieval ranking.
package emotion

import (
	"strings"

	"github.com/arialabs/aria/internal/types"
)

type group int

const (
	groupNone group = iota
	groupNegative
	groupPositive
	groupNeutral
)

// groupOf maps each supported label to exactly one similarity group.
// Labels missing here belong to no group, so they only ever score as
// "different" against every other label, including other unknowns.
var groupOf = map[string]group{
	"sadness":    groupNegative,
	"anger":      groupNegative,
	"fear":       groupNegative,
	"disgust":    groupNegative,
	"joy":        groupPositive,
	"happiness":  groupPositive,
	"excitement": groupPositive,
	"love":       groupPositive,
	"surprise":   groupNeutral,
	"neutral":    groupNeutral,
	"curiosity":  groupNeutral,
}

const (
	scoreIdentical = 1.0
	scoreSameGroup = 0.7
	scoreDifferent = 0.3
)

// Similarity scores how close two emotion labels are, in [0,1]:
// 1.0 for identical labels, 0.7 for labels in the same group, 0.3
// otherwise. Symmetric and case-insensitive.
func Similarity(a, b types.EmotionLabel) float64 {
	la := strings.ToLower(strings.TrimSpace(string(a)))
	lb := strings.ToLower(strings.TrimSpace(string(b)))

	if la == lb {
		return scoreIdentical
	}
	ga, gb := groupOf[la], groupOf[lb]
	if ga != groupNone && ga == gb {
		return scoreSameGroup
	}
	return scoreDifferent
}

// Known reports whether the label belongs to the supported vocabulary.
func Known(label types.EmotionLabel) bool {
	_, ok := groupOf[strings.ToLower(strings.TrimSpace(string(label)))]
	return ok
}

// Vocabulary returns the supported labels in a stable order.
func Vocabulary() []types.EmotionLabel {
	return []types.EmotionLabel{
		types.EmotionSadness,
		types.EmotionAnger,
		types.EmotionFear,
		types.EmotionDisgust,
		types.EmotionJoy,
		types.EmotionHappiness,
		types.EmotionExcitement,
		types.EmotionLove,
		types.EmotionSurprise,
		types.EmotionNeutral,
		types.EmotionCuriosity,
	}
}
