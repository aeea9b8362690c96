package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/arialabs/aria/internal/chat"
	"github.com/arialabs/aria/internal/conversation"
	"github.com/arialabs/aria/internal/persona"
	"github.com/arialabs/aria/internal/storage"
	"github.com/arialabs/aria/internal/types"
)

type stubClassifier struct{ label types.EmotionLabel }

func (c stubClassifier) Classify(ctx context.Context, text string) (types.EmotionLabel, float64, error) {
	return c.label, 0.9, nil
}

type stubEmbedder struct{}

func (stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

type stubMemories struct{ records []types.MemoryRecord }

func (m *stubMemories) Remember(ctx context.Context, text string, emotion types.EmotionLabel, speaker, reply string) error {
	return nil
}

func (m *stubMemories) Recall(ctx context.Context, embedding []float32, n int) ([]types.MemoryRecord, error) {
	return m.records, nil
}

type stubGenerator struct{ reply string }

func (g stubGenerator) Generate(ctx context.Context, genCtx types.GenerationContext) (string, error) {
	return g.reply, nil
}

type discardLog struct{}

func (discardLog) Append(entry storage.MemoryLogEntry) error { return nil }

func newTestRouter(t *testing.T, memories *stubMemories) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := chat.NewService(
		stubClassifier{label: types.EmotionJoy},
		stubEmbedder{},
		memories,
		stubGenerator{reply: "That's wonderful!"},
		conversation.NewTracker(nil, 10),
		discardLog{},
		persona.Default(),
		chat.Options{},
	)
	return New(svc).SetupRouter()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func TestRootReportsCharacter(t *testing.T) {
	router := newTestRouter(t, &stubMemories{})
	w, body := doJSON(t, router, http.MethodGet, "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["status"] != "online" || body["character"] != "Aria" {
		t.Fatalf("unexpected root payload: %v", body)
	}
}

func TestChatTurn(t *testing.T) {
	router := newTestRouter(t, &stubMemories{})
	w, body := doJSON(t, router, http.MethodPost, "/chat", `{"message": "I got the job!"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", w.Code, body)
	}
	if body["reply"] != "That's wonderful!" {
		t.Fatalf("unexpected reply: %v", body["reply"])
	}
	if body["user_emotion"] != "joy" {
		t.Fatalf("unexpected emotion: %v", body["user_emotion"])
	}
	stats, ok := body["conversation_stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected conversation stats, got %v", body)
	}
	if stats["turn_count"] != float64(2) {
		t.Fatalf("expected 2 turns recorded, got %v", stats["turn_count"])
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	router := newTestRouter(t, &stubMemories{})

	w, _ := doJSON(t, router, http.MethodPost, "/chat", `{"message": ""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty message, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodPost, "/chat", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestChatRejectsInvalidCandidate(t *testing.T) {
	memories := &stubMemories{records: []types.MemoryRecord{
		{ID: "bad", Text: "x", Embedding: []float32{1, 0, 0}},
	}}
	router := newTestRouter(t, memories)

	w, body := doJSON(t, router, http.MethodPost, "/chat", `{"message": "hello"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %v", w.Code, body)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "bad") {
		t.Fatalf("expected the offending candidate named, got %v", body["error"])
	}
}

func TestConversationStateAndReset(t *testing.T) {
	router := newTestRouter(t, &stubMemories{})

	if w, _ := doJSON(t, router, http.MethodPost, "/chat", `{"message": "hi"}`); w.Code != http.StatusOK {
		t.Fatalf("expected chat turn to succeed, got %d", w.Code)
	}

	w, body := doJSON(t, router, http.MethodGet, "/conversation/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["turn_count"] != float64(2) {
		t.Fatalf("expected 2 turns before reset, got %v", body["turn_count"])
	}
	if body["emotional_journey"] != "joy" {
		t.Fatalf("unexpected journey: %v", body["emotional_journey"])
	}

	if w, _ := doJSON(t, router, http.MethodPost, "/conversation/reset", ""); w.Code != http.StatusOK {
		t.Fatalf("expected reset to succeed, got %d", w.Code)
	}

	w, body = doJSON(t, router, http.MethodGet, "/conversation/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["turn_count"] != float64(0) {
		t.Fatalf("expected a clean state after reset, got %v", body["turn_count"])
	}
}

func TestCharacterEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubMemories{})
	w, body := doJSON(t, router, http.MethodGet, "/character", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["name"] != "Aria" {
		t.Fatalf("expected the persona definition, got %v", body)
	}
	if _, ok := body["response_patterns"].(map[string]any); !ok {
		t.Fatalf("expected response patterns in the payload, got %v", body)
	}
}
