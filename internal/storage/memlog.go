package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arialabs/aria/internal/types"
)

// MemoryLogEntry is one audit record of a completed exchange.
type MemoryLogEntry struct {
	UserText    string             `json:"user_text"`
	UserEmotion types.EmotionLabel `json:"user_emotion"`
	AgentReply  string             `json:"agent_reply"`
	Timestamp   time.Time          `json:"timestamp"`
}

// MemoryLog is the append-only JSONL record of exchanges, kept for
// audit and replay independently of the vector store.
type MemoryLog struct {
	mu   sync.Mutex
	path string
}

// NewMemoryLog returns a log appending to path.
func NewMemoryLog(path string) *MemoryLog {
	return &MemoryLog{path: path}
}

// Append writes one entry as a single JSON line.
func (l *MemoryLog) Append(entry MemoryLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode memory log entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create memory log directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open memory log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append memory log entry: %w", err)
	}
	return nil
}
