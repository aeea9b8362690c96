// Package chat orchestrates one conversational turn end to end:
// classify, retrieve, rank, assemble, generate, and record.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/arialabs/aria/internal/conversation"
	"github.com/arialabs/aria/internal/prompt"
	"github.com/arialabs/aria/internal/retrieval"
	"github.com/arialabs/aria/internal/storage"
	"github.com/arialabs/aria/internal/types"
)

// fallbackReply keeps the conversation alive when the generator fails.
const fallbackReply = "I'm experiencing a technical difficulty, but I'm still here for you. Let's try continuing our conversation."

// Classifier labels an utterance with an emotion.
type Classifier interface {
	Classify(ctx context.Context, text string) (types.EmotionLabel, float64, error)
}

// Embedder turns a query into a vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Memories writes and recalls memory records.
type Memories interface {
	Remember(ctx context.Context, text string, emotion types.EmotionLabel, speaker, reply string) error
	Recall(ctx context.Context, embedding []float32, n int) ([]types.MemoryRecord, error)
}

// Generator produces the agent reply from a generation context.
type Generator interface {
	Generate(ctx context.Context, genCtx types.GenerationContext) (string, error)
}

// MemoryLogger appends audit records of completed exchanges.
type MemoryLogger interface {
	Append(entry storage.MemoryLogEntry) error
}

// Options carries the retrieval defaults for the service. A negative
// EmotionWeight selects the built-in default; zero is a valid setting
// that disables the emotional term.
type Options struct {
	TopK          int
	EmotionWeight float64
	HalfLife      time.Duration
}

// Service runs the per-turn pipeline.
type Service struct {
	classifier Classifier
	embedder   Embedder
	memories   Memories
	generator  Generator
	tracker    *conversation.Tracker
	memLog     MemoryLogger
	persona    types.CharacterPersona
	opts       Options
}

// NewService wires the turn pipeline.
func NewService(classifier Classifier, embedder Embedder, memories Memories, generator Generator, tracker *conversation.Tracker, memLog MemoryLogger, persona types.CharacterPersona, opts Options) *Service {
	if opts.TopK <= 0 {
		opts.TopK = retrieval.DefaultTopK
	}
	if opts.EmotionWeight < 0 {
		opts.EmotionWeight = retrieval.DefaultEmotionWeight
	}
	if opts.HalfLife <= 0 {
		opts.HalfLife = retrieval.DefaultHalfLife
	}
	return &Service{
		classifier: classifier,
		embedder:   embedder,
		memories:   memories,
		generator:  generator,
		tracker:    tracker,
		memLog:     memLog,
		persona:    persona,
		opts:       opts,
	}
}

// TurnRequest is one user message plus optional per-request overrides.
type TurnRequest struct {
	Message          string
	EmotionWeight    *float64
	UseRecentContext *bool
}

// TurnResult is the outcome of one processed turn.
type TurnResult struct {
	Reply            string
	UserEmotion      types.EmotionLabel
	RetrievedContext []string
	EmotionalSummary string
	Stats            types.StateSummary
	Character        string
}

// ProcessTurn runs the pipeline for one user message. Collaborator
// failures (classifier, embedder, store, generator) degrade to defaults
// rather than failing the turn; only invalid ranking input is surfaced.
func (s *Service) ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	now := time.Now()

	emotionLabel, confidence, err := s.classifier.Classify(ctx, req.Message)
	if err != nil {
		slog.Warn("emotion classification failed, defaulting to neutral", "error", err.Error())
		emotionLabel = types.EmotionNeutral
		confidence = 0
	}
	slog.Info("classified user emotion", "emotion", emotionLabel, "confidence", confidence)

	ranked, err := s.rankMemories(ctx, req, emotionLabel, now)
	if err != nil {
		return nil, err
	}

	omitRecent := false
	if req.UseRecentContext != nil {
		omitRecent = !*req.UseRecentContext
	}
	genCtx := prompt.Assemble(s.persona, s.tracker, ranked, req.Message, emotionLabel, prompt.AssembleOptions{
		OmitRecentTurns: omitRecent,
	})

	reply, err := s.generator.Generate(ctx, genCtx)
	if err != nil {
		slog.Warn("reply generation failed, using fallback", "error", err.Error())
		reply = fallbackReply
	}

	s.recordTurn(ctx, req.Message, emotionLabel, reply, now)

	texts := make([]string, 0, len(ranked))
	for _, c := range ranked {
		texts = append(texts, c.Record.Text)
	}

	return &TurnResult{
		Reply:            reply,
		UserEmotion:      emotionLabel,
		RetrievedContext: texts,
		EmotionalSummary: genCtx.EmotionalSummary,
		Stats:            s.tracker.Summary(),
		Character:        s.persona.Name,
	}, nil
}

// rankMemories embeds the query, over-fetches candidates, and re-ranks
// them. Store and embedding failures degrade to an empty memory set.
func (s *Service) rankMemories(ctx context.Context, req TurnRequest, emotionLabel types.EmotionLabel, now time.Time) ([]types.RetrievalCandidate, error) {
	vec, err := s.embedder.EmbedQuery(ctx, req.Message)
	if err != nil {
		slog.Warn("query embedding failed, skipping retrieval", "error", err.Error())
		return nil, nil
	}
	if len(vec) == 0 {
		return nil, nil
	}

	fetch := 2 * s.opts.TopK
	if fetch < 10 {
		fetch = 10
	}
	candidates, err := s.memories.Recall(ctx, vec, fetch)
	if err != nil {
		slog.Warn("candidate recall failed, skipping retrieval", "error", err.Error())
		return nil, nil
	}

	weight := s.opts.EmotionWeight
	if req.EmotionWeight != nil {
		weight = *req.EmotionWeight
	}

	return retrieval.Rank(vec, emotionLabel, candidates, retrieval.Options{
		TopK:          s.opts.TopK,
		EmotionWeight: weight,
		HalfLife:      s.opts.HalfLife,
		Now:           now,
	})
}

// recordTurn writes the exchange back into the memory store, the audit
// log, and the conversation state. All writes are best-effort.
func (s *Service) recordTurn(ctx context.Context, userText string, emotionLabel types.EmotionLabel, reply string, now time.Time) {
	if err := s.memories.Remember(ctx, userText, emotionLabel, types.SpeakerUser, reply); err != nil {
		slog.Warn("failed to store memory record", "error", err.Error())
	}
	if s.memLog != nil {
		if err := s.memLog.Append(storage.MemoryLogEntry{
			UserText:    userText,
			UserEmotion: emotionLabel,
			AgentReply:  reply,
			Timestamp:   now,
		}); err != nil {
			slog.Warn("failed to append memory log", "error", err.Error())
		}
	}

	s.tracker.AppendTurn(types.Turn{
		Speaker:   types.SpeakerUser,
		Text:      userText,
		Emotion:   emotionLabel,
		Timestamp: now,
	})
	s.tracker.AppendTurn(types.Turn{
		Speaker:   types.SpeakerAgent,
		Text:      reply,
		Timestamp: time.Now(),
	})
}

// Persona exposes the configured character.
func (s *Service) Persona() types.CharacterPersona {
	return s.persona
}

// Tracker exposes the conversation state tracker.
func (s *Service) Tracker() *conversation.Tracker {
	return s.tracker
}
