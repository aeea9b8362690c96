// Package conversation tracks the emotional arc of a conversation.
package conversation

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/arialabs/aria/internal/types"
)

// DefaultWindowSize is the number of recent turns retained in memory.
const DefaultWindowSize = 10

// Document is the persisted conversation-state record. DominantEmotion
// is stored for inspection but recomputed from the history on load.
type Document struct {
	Turns           []types.Turn         `json:"turns"`
	EmotionHistory  []types.EmotionLabel `json:"emotion_history"`
	DominantEmotion types.EmotionLabel   `json:"dominant_emotion"`
	TurnCount       int                  `json:"turn_count"`
}

// StateStore persists the conversation state document. Save overwrites
// the whole document, so retries are idempotent.
type StateStore interface {
	Load() (*Document, error)
	Save(doc *Document) error
}

// Tracker maintains the bounded turn window and the full emotion
// history for one conversation. Mutations are serialized; the in-memory
// state stays authoritative even when persistence fails.
type Tracker struct {
	mu         sync.Mutex
	store      StateStore
	windowSize int

	turns          []types.Turn
	emotionHistory []types.EmotionLabel
	dominant       types.EmotionLabel
	turnCount      int
}

// NewTracker creates a Tracker, resuming from the store when it holds a
// usable document. A missing or unreadable document starts fresh.
func NewTracker(store StateStore, windowSize int) *Tracker {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	t := &Tracker{store: store, windowSize: windowSize}

	if store == nil {
		return t
	}
	doc, err := store.Load()
	if err != nil {
		slog.Warn("failed to load conversation state, starting fresh", "error", err.Error())
		return t
	}
	if doc == nil {
		return t
	}

	t.turns = append(t.turns, doc.Turns...)
	if len(t.turns) > windowSize {
		t.turns = t.turns[len(t.turns)-windowSize:]
	}
	t.emotionHistory = append(t.emotionHistory, doc.EmotionHistory...)
	t.turnCount = doc.TurnCount
	if t.turnCount < len(t.turns) {
		t.turnCount = len(t.turns)
	}
	t.dominant = dominantEmotion(t.emotionHistory)
	return t
}

// AppendTurn records a turn, evicting the oldest window entry beyond
// capacity, and persists the new state. The emotion of user turns joins
// the full history; agent turns only occupy the window.
func (t *Tracker) AppendTurn(turn types.Turn) types.StateSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turns = append(t.turns, turn)
	if len(t.turns) > t.windowSize {
		t.turns = t.turns[1:]
	}
	t.turnCount++

	if turn.Speaker == types.SpeakerUser && turn.Emotion != "" {
		t.emotionHistory = append(t.emotionHistory, turn.Emotion)
		t.dominant = dominantEmotion(t.emotionHistory)
	}

	t.persistLocked()
	return t.summaryLocked()
}

// Reset clears the window, the emotion history, and the dominant
// emotion, and persists the empty state.
func (t *Tracker) Reset() types.StateSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turns = nil
	t.emotionHistory = nil
	t.dominant = ""
	t.turnCount = 0

	t.persistLocked()
	return t.summaryLocked()
}

// Summary is a pure read of the current state.
func (t *Tracker) Summary() types.StateSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summaryLocked()
}

// RecentTurns returns a copy of the last n turns from the window.
func (t *Tracker) RecentTurns(n int) []types.Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 || len(t.turns) == 0 {
		return nil
	}
	if n > len(t.turns) {
		n = len(t.turns)
	}
	recent := make([]types.Turn, n)
	copy(recent, t.turns[len(t.turns)-n:])
	return recent
}

// EmotionCount reports how many times label appears in the full
// emotion history.
func (t *Tracker) EmotionCount(label types.EmotionLabel) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, e := range t.emotionHistory {
		if e == label {
			count++
		}
	}
	return count
}

func (t *Tracker) summaryLocked() types.StateSummary {
	return types.StateSummary{
		TurnCount:        t.turnCount,
		DominantEmotion:  t.dominant,
		EmotionalJourney: journey(t.emotionHistory),
	}
}

// persistLocked saves the full state best-effort. A failure is logged
// and left for the next mutation to retry; the in-memory state remains
// the source of truth for this process.
func (t *Tracker) persistLocked() {
	if t.store == nil {
		return
	}
	doc := &Document{
		Turns:           append([]types.Turn(nil), t.turns...),
		EmotionHistory:  append([]types.EmotionLabel(nil), t.emotionHistory...),
		DominantEmotion: t.dominant,
		TurnCount:       t.turnCount,
	}
	if err := t.store.Save(doc); err != nil {
		slog.Warn("failed to persist conversation state", "error", err.Error())
	}
}

// dominantEmotion returns the most frequent label; a frequency tie goes
// to the label that appeared first in the history.
func dominantEmotion(history []types.EmotionLabel) types.EmotionLabel {
	if len(history) == 0 {
		return ""
	}
	counts := make(map[types.EmotionLabel]int, len(history))
	for _, label := range history {
		counts[label]++
	}
	var best types.EmotionLabel
	bestCount := 0
	for _, label := range history {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

// journey renders the full emotion history as an arrow-joined trace,
// e.g. "joy → surprise → sadness".
func journey(history []types.EmotionLabel) string {
	if len(history) == 0 {
		return ""
	}
	parts := make([]string, len(history))
	for i, label := range history {
		parts[i] = string(label)
	}
	return strings.Join(parts, " → ")
}
