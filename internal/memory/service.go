package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arialabs/aria/internal/types"
)

// Repo is the persistent store of memory records.
type Repo interface {
	Add(ctx context.Context, record types.MemoryRecord) error
	QueryNearest(ctx context.Context, embedding []float32, n int) ([]types.MemoryRecord, error)
}

// Service embeds and stores memories, and recalls ranking candidates.
type Service struct {
	embedder Embedder
	repo     Repo
}

// NewService returns a memory service.
func NewService(embedder Embedder, repo Repo) *Service {
	return &Service{embedder: embedder, repo: repo}
}

// Remember embeds text and stores it as a new immutable memory record.
func (s *Service) Remember(ctx context.Context, text string, emotion types.EmotionLabel, speaker, reply string) error {
	if s.embedder == nil || s.repo == nil {
		return fmt.Errorf("memory service not configured")
	}
	if text == "" {
		return nil
	}

	embedding, err := s.embedder.EmbedDocument(ctx, text)
	if err != nil {
		return err
	}

	return s.repo.Add(ctx, types.MemoryRecord{
		ID:        uuid.NewString(),
		Text:      text,
		Embedding: embedding,
		Emotion:   emotion,
		Speaker:   speaker,
		Reply:     reply,
		CreatedAt: time.Now(),
	})
}

// Recall fetches the n nearest candidate records for a query vector.
// The candidates carry their own embeddings and metadata for re-ranking.
func (s *Service) Recall(ctx context.Context, embedding []float32, n int) ([]types.MemoryRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("memory service not configured")
	}
	if len(embedding) == 0 || n <= 0 {
		return nil, nil
	}
	return s.repo.QueryNearest(ctx, embedding, n)
}
