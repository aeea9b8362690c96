// Package retrieval ranks memory candidates for a query by blending
// semantic similarity, emotional resonance, and recency.
package retrieval

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/arialabs/aria/internal/emotion"
	"github.com/arialabs/aria/internal/types"
)

const (
	// DefaultTopK bounds the ranked result size.
	DefaultTopK = 5
	// DefaultEmotionWeight balances emotional resonance against
	// semantic similarity.
	DefaultEmotionWeight = 0.4
	// DefaultHalfLife is the recency decay half-life.
	DefaultHalfLife = time.Hour

	// recencyBias is a fixed additive boost for fresh memories. It is
	// deliberately not normalized against the other two terms, so
	// combined scores can exceed 1.0; only the ordering is contractual.
	recencyBias = 0.1
)

// InvalidCandidateError reports a candidate whose embedding cannot be
// scored against the query vector. Ranking fails fast instead of
// silently skipping, so results stay reproducible.
type InvalidCandidateError struct {
	ID   string
	Got  int
	Want int
}

func (e *InvalidCandidateError) Error() string {
	return fmt.Sprintf("invalid candidate %s: embedding dimension %d, query dimension %d", e.ID, e.Got, e.Want)
}

// Options tunes one ranking call. Zero values fall back to defaults;
// EmotionWeight is clamped to [0,1].
type Options struct {
	TopK          int
	EmotionWeight float64
	HalfLife      time.Duration
	Now           time.Time
}

func (o Options) withDefaults() Options {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.EmotionWeight < 0 {
		o.EmotionWeight = 0
	}
	if o.EmotionWeight > 1 {
		o.EmotionWeight = 1
	}
	if o.HalfLife <= 0 {
		o.HalfLife = DefaultHalfLife
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Rank scores every candidate against the query and returns at most
// opts.TopK candidates in descending combined-score order. Ties resolve
// by recency (newer wins), then by input order. An empty candidate set
// yields an empty result, not an error.
func Rank(queryVec []float32, queryEmotion types.EmotionLabel, candidates []types.MemoryRecord, opts Options) ([]types.RetrievalCandidate, error) {
	opts = opts.withDefaults()

	if len(candidates) == 0 {
		return nil, nil
	}

	scored := make([]types.RetrievalCandidate, 0, len(candidates))
	for _, record := range candidates {
		if len(record.Embedding) != len(queryVec) {
			return nil, &InvalidCandidateError{ID: record.ID, Got: len(record.Embedding), Want: len(queryVec)}
		}

		semantic := semanticScore(queryVec, record.Embedding)
		emotional := emotion.Similarity(queryEmotion, record.Emotion)
		recency := recencyScore(opts.Now.Sub(record.CreatedAt), opts.HalfLife)

		scored = append(scored, types.RetrievalCandidate{
			Record:        record,
			SemanticScore: semantic,
			EmotionScore:  emotional,
			RecencyScore:  recency,
			CombinedScore: (1-opts.EmotionWeight)*semantic + opts.EmotionWeight*emotional + recencyBias*recency,
		})
	}

	// Stable sort keeps input order as the final tie-break.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].CombinedScore != scored[j].CombinedScore {
			return scored[i].CombinedScore > scored[j].CombinedScore
		}
		return scored[i].Record.CreatedAt.After(scored[j].Record.CreatedAt)
	})

	if len(scored) > opts.TopK {
		scored = scored[:opts.TopK]
	}
	return scored, nil
}

// semanticScore is cosine similarity clamped to [0,1]. Degenerate
// zero-magnitude vectors score 0. The single Sqrt over the product
// keeps identical vectors at exactly 1.0: dot equals both norms, and
// Sqrt(x*x) is x under IEEE rounding.
func semanticScore(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / math.Sqrt(normA*normB)
	if cos < 0 {
		return 0
	}
	if cos > 1 {
		return 1
	}
	return cos
}

// recencyScore decays exponentially with age: 1.0 at age zero, halving
// every halfLife, asymptotically approaching but never reaching zero.
func recencyScore(age, halfLife time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Pow(0.5, age.Hours()/halfLife.Hours())
}
