package emotion

import (
	"testing"

	"github.com/arialabs/aria/internal/types"
)

func TestSimilarityIdenticalLabels(t *testing.T) {
	if got := Similarity(types.EmotionSadness, types.EmotionSadness); got != 1.0 {
		t.Fatalf("expected 1.0 for identical labels, got %v", got)
	}
	if got := Similarity("Sadness", "sadness"); got != 1.0 {
		t.Fatalf("expected case-insensitive identity, got %v", got)
	}
}

func TestSimilaritySameGroup(t *testing.T) {
	cases := [][2]types.EmotionLabel{
		{types.EmotionSadness, types.EmotionAnger},
		{types.EmotionJoy, types.EmotionLove},
		{types.EmotionSurprise, types.EmotionNeutral},
	}
	for _, pair := range cases {
		if got := Similarity(pair[0], pair[1]); got != 0.7 {
			t.Fatalf("expected 0.7 for %s/%s, got %v", pair[0], pair[1], got)
		}
	}
}

func TestSimilarityDifferentGroups(t *testing.T) {
	if got := Similarity(types.EmotionSadness, types.EmotionJoy); got != 0.3 {
		t.Fatalf("expected 0.3 for cross-group labels, got %v", got)
	}
}

func TestSimilarityUnknownLabels(t *testing.T) {
	// Unknown labels belong to no group, even against each other.
	if got := Similarity("melancholy", "nostalgia"); got != 0.3 {
		t.Fatalf("expected 0.3 for two unknown labels, got %v", got)
	}
	if got := Similarity("melancholy", types.EmotionSadness); got != 0.3 {
		t.Fatalf("expected 0.3 for unknown vs known, got %v", got)
	}
	if got := Similarity("melancholy", "melancholy"); got != 1.0 {
		t.Fatalf("identical unknown labels still match exactly, got %v", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	labels := append(Vocabulary(), "melancholy")
	for _, a := range labels {
		for _, b := range labels {
			if Similarity(a, b) != Similarity(b, a) {
				t.Fatalf("similarity not symmetric for %s/%s", a, b)
			}
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known(types.EmotionJoy) {
		t.Fatal("expected joy to be known")
	}
	if Known("melancholy") {
		t.Fatal("expected melancholy to be unknown")
	}
}
