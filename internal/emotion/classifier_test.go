package emotion

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/arialabs/aria/internal/types"
)

type fakeModel struct {
	reply string
	err   error
}

func (f *fakeModel) Name() string {
	return "fake"
}

func (f *fakeModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		if f.err != nil {
			yield(nil, f.err)
			return
		}
		yield(&model.LLMResponse{
			Content: genai.NewContentFromText(f.reply, "model"),
		}, nil)
	}
}

func TestClassifyParsesLabelAndConfidence(t *testing.T) {
	c := NewClassifier(&fakeModel{reply: `{"label": "Sadness", "confidence": 0.92}`})

	label, confidence, err := c.Classify(context.Background(), "I feel so alone today")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if label != types.EmotionSadness {
		t.Fatalf("expected sadness, got %s", label)
	}
	if confidence != 0.92 {
		t.Fatalf("expected confidence 0.92, got %v", confidence)
	}
}

func TestClassifyToleratesSurroundingProse(t *testing.T) {
	c := NewClassifier(&fakeModel{reply: "Sure! Here you go:\n```json\n{\"label\": \"joy\", \"confidence\": 0.8}\n```"})

	label, _, err := c.Classify(context.Background(), "best day ever")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if label != types.EmotionJoy {
		t.Fatalf("expected joy, got %s", label)
	}
}

func TestClassifyBlankTextIsNeutral(t *testing.T) {
	c := NewClassifier(&fakeModel{reply: `{"label": "joy", "confidence": 1}`})

	label, confidence, err := c.Classify(context.Background(), "   ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if label != types.EmotionNeutral || confidence != 0 {
		t.Fatalf("expected neutral/0 for blank text, got %s/%v", label, confidence)
	}
}

func TestClassifyUnparseableOutputFallsBackToNeutral(t *testing.T) {
	c := NewClassifier(&fakeModel{reply: "I cannot classify that."})

	label, confidence, err := c.Classify(context.Background(), "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if label != types.EmotionNeutral {
		t.Fatalf("expected neutral fallback, got %s", label)
	}
	if confidence != 0.1 {
		t.Fatalf("expected low fallback confidence, got %v", confidence)
	}
}

func TestClassifyRejectsLabelOutsideVocabulary(t *testing.T) {
	c := NewClassifier(&fakeModel{reply: `{"label": "ecstatic", "confidence": 0.9}`})

	label, confidence, err := c.Classify(context.Background(), "I can't believe it!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if label != types.EmotionNeutral {
		t.Fatalf("expected neutral for an off-vocabulary label, got %s", label)
	}
	if confidence != 0.1 {
		t.Fatalf("expected low fallback confidence, got %v", confidence)
	}
}

func TestClassifyInstructionListsVocabulary(t *testing.T) {
	for _, label := range Vocabulary() {
		if !strings.Contains(classifyInstruction, string(label)) {
			t.Fatalf("expected the instruction to offer %q", label)
		}
	}
}

func TestClassifyModelErrorSurfaces(t *testing.T) {
	c := NewClassifier(&fakeModel{err: fmt.Errorf("backend down")})

	label, _, err := c.Classify(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected an error")
	}
	if label != types.EmotionNeutral {
		t.Fatalf("expected neutral on error, got %s", label)
	}
}

func TestClassifyClampsConfidence(t *testing.T) {
	c := NewClassifier(&fakeModel{reply: `{"label": "fear", "confidence": 1.7}`})

	_, confidence, err := c.Classify(context.Background(), "something is out there")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if confidence != 1.0 {
		t.Fatalf("expected confidence clamped to 1.0, got %v", confidence)
	}
}
