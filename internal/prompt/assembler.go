// Package prompt assembles the generation context for a turn and
// renders it into the layered prompt handed to the reply model.
package prompt

import (
	"fmt"

	"github.com/arialabs/aria/internal/persona"
	"github.com/arialabs/aria/internal/types"
)

// recentTurnCount is how many window turns are shown to the generator.
// Decoupled from the tracker's retention window on purpose: the window
// bounds memory, this bounds what one prompt carries.
const recentTurnCount = 3

// ConversationView is the read-only slice of tracker state the
// assembler consumes.
type ConversationView interface {
	Summary() types.StateSummary
	RecentTurns(n int) []types.Turn
	EmotionCount(label types.EmotionLabel) int
}

// AssembleOptions tunes one assembly call.
type AssembleOptions struct {
	// OmitRecentTurns leaves the recent-conversation slice out of the
	// context (the use_recent_context=false request override).
	OmitRecentTurns bool
}

// Assemble builds the GenerationContext for the current turn. The
// ranked memories pass through unmodified and in order; an emotion
// absent from the persona's mapping resolves to the default pattern.
func Assemble(p types.CharacterPersona, state ConversationView, ranked []types.RetrievalCandidate, userText string, userEmotion types.EmotionLabel, opts AssembleOptions) types.GenerationContext {
	pattern := persona.ResponsePattern(p, userEmotion)
	summary := state.Summary()

	var recent []types.Turn
	if !opts.OmitRecentTurns {
		recent = state.RecentTurns(recentTurnCount)
	}

	return types.GenerationContext{
		Persona:          p,
		Pattern:          pattern,
		Memories:         ranked,
		RecentTurns:      recent,
		UserText:         userText,
		UserEmotion:      userEmotion,
		EmotionalSummary: emotionalSummary(state, pattern, userEmotion),
		Stats:            summary,
	}
}

// emotionalSummary is the human-readable sentence describing how the
// conversation has met this emotion before, plus the persona's empathy
// guidance for it.
func emotionalSummary(state ConversationView, pattern types.EmotionalResponsePattern, current types.EmotionLabel) string {
	count := state.EmotionCount(current)

	var occurrence string
	switch count {
	case 0:
		occurrence = fmt.Sprintf("This is the first time we're exploring %s together.", current)
	case 1:
		occurrence = fmt.Sprintf("We've touched on %s once before in this conversation.", current)
	default:
		occurrence = fmt.Sprintf("We've touched on %s %d times in this conversation.", current, count)
	}

	guidance := fmt.Sprintf("Respond in a %s manner with empathy level %.0f%%.", pattern.ResponseStyle, pattern.EmpathyLevel*100)
	return occurrence + " " + guidance
}
