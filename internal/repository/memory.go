package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/arialabs/aria/internal/types"
)

// memoryModel maps to the memories table.
type memoryModel struct {
	ID      string `gorm:"primaryKey"`
	Text    string
	Emotion string
	Speaker string
	Reply   string
	// Embedding stores the vector representation for similarity search.
	Embedding *pgvector.Vector `gorm:"type:vector"`
	CreatedAt time.Time
}

func (memoryModel) TableName() string {
	return "memories"
}

// MemoryRepo accesses memory record data.
type MemoryRepo struct {
	db *gorm.DB
}

// NewMemoryRepo returns a MemoryRepo.
func NewMemoryRepo(db *gorm.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

// Add inserts one memory record. Records are never updated afterwards.
func (r *MemoryRepo) Add(ctx context.Context, record types.MemoryRecord) error {
	var vector *pgvector.Vector
	if len(record.Embedding) > 0 {
		v := pgvector.NewVector(record.Embedding)
		vector = &v
	}
	row := memoryModel{
		ID:        record.ID,
		Text:      record.Text,
		Emotion:   string(record.Emotion),
		Speaker:   record.Speaker,
		Reply:     record.Reply,
		Embedding: vector,
		CreatedAt: record.CreatedAt,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

// QueryNearest returns the n records closest to the query vector by
// cosine distance, with embeddings and metadata for re-ranking.
func (r *MemoryRepo) QueryNearest(ctx context.Context, embedding []float32, n int) ([]types.MemoryRecord, error) {
	if len(embedding) == 0 || n <= 0 {
		return nil, nil
	}

	var rows []memoryModel
	if err := r.db.WithContext(ctx).
		Raw(`
		SELECT id, text, emotion, speaker, reply, embedding, created_at
		FROM memories
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2`, pgvector.NewVector(embedding), n).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query nearest memories: %w", err)
	}

	results := make([]types.MemoryRecord, 0, len(rows))
	for _, row := range rows {
		var vec []float32
		if row.Embedding != nil {
			vec = row.Embedding.Slice()
		}
		results = append(results, types.MemoryRecord{
			ID:        row.ID,
			Text:      row.Text,
			Emotion:   types.EmotionLabel(row.Emotion),
			Speaker:   row.Speaker,
			Reply:     row.Reply,
			Embedding: vec,
			CreatedAt: row.CreatedAt,
		})
	}
	return results, nil
}
