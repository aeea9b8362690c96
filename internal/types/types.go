// Package types holds the domain records shared across the service.
package types

import "time"

// EmotionLabel is a categorical emotion tag attached to an utterance,
// e.g. "sadness" or "joy". The vocabulary is open: labels outside the
// known set are carried through as-is.
type EmotionLabel string

const (
	EmotionSadness    EmotionLabel = "sadness"
	EmotionAnger      EmotionLabel = "anger"
	EmotionFear       EmotionLabel = "fear"
	EmotionDisgust    EmotionLabel = "disgust"
	EmotionJoy        EmotionLabel = "joy"
	EmotionHappiness  EmotionLabel = "happiness"
	EmotionExcitement EmotionLabel = "excitement"
	EmotionLove       EmotionLabel = "love"
	EmotionSurprise   EmotionLabel = "surprise"
	EmotionNeutral    EmotionLabel = "neutral"
	EmotionCuriosity  EmotionLabel = "curiosity"
)

// Speaker roles on a conversation turn.
const (
	SpeakerUser  = "user"
	SpeakerAgent = "agent"
)

// MemoryRecord is one stored conversational memory. Records are written
// once by the memory service and treated as immutable afterwards.
type MemoryRecord struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Embedding []float32    `json:"-"`
	Emotion   EmotionLabel `json:"emotion"`
	Speaker   string       `json:"speaker"`
	Reply     string       `json:"reply,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// RetrievalCandidate annotates a MemoryRecord with the per-query scores
// computed during one ranking call. It lives only for that call.
type RetrievalCandidate struct {
	Record        MemoryRecord
	SemanticScore float64
	EmotionScore  float64
	RecencyScore  float64
	CombinedScore float64
}

// Turn is a single utterance in the conversation. Emotion is set for
// user turns only.
type Turn struct {
	Speaker   string       `json:"speaker"`
	Text      string       `json:"text"`
	Emotion   EmotionLabel `json:"emotion,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// StateSummary is the read-only view of the conversation state.
type StateSummary struct {
	TurnCount        int          `json:"turn_count"`
	DominantEmotion  EmotionLabel `json:"dominant_emotion"`
	EmotionalJourney string       `json:"emotional_journey"`
}

// EmotionalResponsePattern describes how the persona responds to one
// emotion.
type EmotionalResponsePattern struct {
	Emotion        EmotionLabel `json:"emotion" toml:"emotion"`
	EmpathyLevel   float64      `json:"empathy_level" toml:"empathy_level"`
	ResponseStyle  string       `json:"response_style" toml:"response_style"`
	ExamplePhrases []string     `json:"example_phrases" toml:"example_phrases"`
}

// CharacterPersona is the static character definition loaded at process
// start. Immutable at runtime.
type CharacterPersona struct {
	Name                  string                                    `json:"name" toml:"name"`
	CoreTraits            []string                                  `json:"core_traits" toml:"core_traits"`
	EmotionalIntelligence float64                                   `json:"emotional_intelligence" toml:"emotional_intelligence"`
	EmpathyBaseline       float64                                   `json:"empathy_baseline" toml:"empathy_baseline"`
	Background            string                                    `json:"background" toml:"background"`
	SpeakingStyle         string                                    `json:"speaking_style" toml:"speaking_style"`
	ResponsePatterns      map[EmotionLabel]EmotionalResponsePattern `json:"response_patterns" toml:"response_patterns"`
}

// GenerationContext is the assembled bundle handed to the reply
// generator. Built fresh per turn and never mutated afterwards.
type GenerationContext struct {
	Persona          CharacterPersona
	Pattern          EmotionalResponsePattern
	Memories         []RetrievalCandidate
	RecentTurns      []Turn
	UserText         string
	UserEmotion      EmotionLabel
	EmotionalSummary string
	Stats            StateSummary
}
