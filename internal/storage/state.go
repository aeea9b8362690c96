// Package storage provides the file-backed conversation state document
// and the append-only memory log.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/arialabs/aria/internal/conversation"
)

// stateSchema guards against trusting a corrupt or hand-mangled state
// file: a document that fails validation is discarded on load.
const stateSchema = `{
	"type": "object",
	"properties": {
		"turns": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"speaker": {"type": "string", "enum": ["user", "agent"]},
					"text": {"type": "string"},
					"emotion": {"type": "string"},
					"timestamp": {"type": "string"}
				},
				"required": ["speaker", "text", "timestamp"]
			}
		},
		"emotion_history": {
			"type": "array",
			"items": {"type": "string"}
		},
		"dominant_emotion": {"type": "string"},
		"turn_count": {"type": "integer", "minimum": 0}
	},
	"required": ["turns", "emotion_history"]
}`

var compiledStateSchema = jsonschema.MustCompileString("conversation_state.json", stateSchema)

// FileStateStore persists the conversation state as a single JSON
// document, overwritten atomically after every mutation.
type FileStateStore struct {
	path string
}

// NewFileStateStore returns a store writing to path.
func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

// Load reads and validates the state document. A missing file yields
// (nil, nil); an unreadable or invalid document yields an error so the
// caller can start fresh.
func (s *FileStateStore) Load() (*conversation.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("failed to decode state file: %w", err)
	}
	if err := compiledStateSchema.Validate(instance); err != nil {
		return nil, fmt.Errorf("state file failed schema validation: %w", err)
	}

	var doc conversation.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode state document: %w", err)
	}
	return &doc, nil
}

// Save overwrites the full document via a temp file and rename, so an
// interrupted write never leaves a half-written document behind.
func (s *FileStateStore) Save(doc *conversation.Document) error {
	if doc == nil {
		return fmt.Errorf("state document cannot be nil")
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
