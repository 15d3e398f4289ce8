package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexbe-contract/internal/chat"
	"nexbe-contract/internal/models"
	"nexbe-contract/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubKnowledgeSource struct {
	entries []models.KnowledgeEntry
	err     error
}

func (s *stubKnowledgeSource) ListAll(context.Context) ([]models.KnowledgeEntry, error) {
	return s.entries, s.err
}

type stubGenerator struct {
	answer string
	err    error
	calls  int
}

func (s *stubGenerator) Generate(context.Context, string, []HistoryMessage) (string, error) {
	s.calls++
	return s.answer, s.err
}

type stubBudget struct {
	allow bool
	err   error
}

func (s *stubBudget) Take(context.Context, string) (bool, error) {
	return s.allow, s.err
}

func testChatConfig() *config.ChatConfig {
	return &config.ChatConfig{
		ConfidenceThreshold: 4,
		FallbackMessage:     "Nie znam odpowiedzi, zostaw numer!",
		FallbackEmotion:     "confused",
		AITimeout:           time.Second,
	}
}

func kbEntries() []models.KnowledgeEntry {
	return []models.KnowledgeEntry{
		{
			Position: 1,
			Keywords: []string{"gwarancja", "lat", "bateria", "falownik"},
			Answer:   "Bateria ma 10 lat gwarancji.",
			Emotion:  "happy",
		},
	}
}

func newTestChatService(t *testing.T, source KnowledgeSource, gen TextGenerator, budget CallBudget) *ChatService {
	t.Helper()
	svc := NewChatService(source, gen, budget, testChatConfig(), zap.NewNop())
	require.NoError(t, svc.LoadKnowledge(context.Background()))
	return svc
}

func TestRespondAnswersFromKnowledgeBase(t *testing.T) {
	gen := &stubGenerator{answer: "AI answer"}
	svc := newTestChatService(t, &stubKnowledgeSource{entries: kbEntries()}, gen, &stubBudget{allow: true})

	result := svc.Respond(context.Background(), "sess-1", "Gwarancja na bateria i falownik - ile lat?", nil)

	assert.Equal(t, chat.SourceKnowledge, result.Source)
	assert.Equal(t, "Bateria ma 10 lat gwarancji.", result.Answer)
	assert.Zero(t, gen.calls, "knowledge hit must not reach the AI")
}

func TestRespondUsesAIFallbackBelowThreshold(t *testing.T) {
	gen := &stubGenerator{answer: "Odpowiedź AI"}
	svc := newTestChatService(t, &stubKnowledgeSource{entries: kbEntries()}, gen, &stubBudget{allow: true})

	result := svc.Respond(context.Background(), "sess-1", "opowiedz mi o pogodzie", nil)

	assert.Equal(t, chat.SourceAI, result.Source)
	assert.Equal(t, "Odpowiedź AI", result.Answer)
	assert.Equal(t, 1, gen.calls)
}

func TestRespondFallsBackWhenAIFails(t *testing.T) {
	gen := &stubGenerator{err: errors.New("gigachat unavailable")}
	svc := newTestChatService(t, &stubKnowledgeSource{entries: kbEntries()}, gen, &stubBudget{allow: true})

	result := svc.Respond(context.Background(), "sess-1", "opowiedz mi o pogodzie", nil)

	assert.Equal(t, chat.SourceFallback, result.Source)
	assert.Equal(t, "Nie znam odpowiedzi, zostaw numer!", result.Answer)
	assert.Equal(t, "confused", result.Emotion)
}

func TestRespondFallsBackWhenBudgetExhausted(t *testing.T) {
	gen := &stubGenerator{answer: "AI answer"}
	svc := newTestChatService(t, &stubKnowledgeSource{entries: kbEntries()}, gen, &stubBudget{allow: false})

	result := svc.Respond(context.Background(), "sess-1", "opowiedz mi o pogodzie", nil)

	assert.Equal(t, chat.SourceFallback, result.Source)
	assert.Zero(t, gen.calls, "exhausted budget must not reach the AI")
}

func TestRespondFallsBackWhenBudgetStoreFails(t *testing.T) {
	gen := &stubGenerator{answer: "AI answer"}
	svc := newTestChatService(t, &stubKnowledgeSource{entries: kbEntries()}, gen, &stubBudget{err: errors.New("redis down")})

	result := svc.Respond(context.Background(), "sess-1", "opowiedz mi o pogodzie", nil)

	assert.Equal(t, chat.SourceFallback, result.Source)
	assert.Zero(t, gen.calls)
}

func TestRespondWithoutGenerator(t *testing.T) {
	svc := newTestChatService(t, &stubKnowledgeSource{entries: kbEntries()}, nil, &stubBudget{allow: true})

	result := svc.Respond(context.Background(), "sess-1", "opowiedz mi o pogodzie", nil)

	assert.Equal(t, chat.SourceFallback, result.Source)
}

func TestRespondWithoutSessionSkipsAI(t *testing.T) {
	gen := &stubGenerator{answer: "AI answer"}
	svc := newTestChatService(t, &stubKnowledgeSource{entries: kbEntries()}, gen, &stubBudget{allow: true})

	result := svc.Respond(context.Background(), "", "opowiedz mi o pogodzie", nil)

	assert.Equal(t, chat.SourceFallback, result.Source)
	assert.Zero(t, gen.calls)
}

func TestLoadKnowledgePropagatesError(t *testing.T) {
	svc := NewChatService(&stubKnowledgeSource{err: errors.New("db down")}, nil, &stubBudget{}, testChatConfig(), zap.NewNop())
	assert.Error(t, svc.LoadKnowledge(context.Background()))
}

func TestRespondWithEmptyKnowledgeBase(t *testing.T) {
	svc := newTestChatService(t, &stubKnowledgeSource{}, nil, &stubBudget{})

	result := svc.Respond(context.Background(), "sess-1", "dowolne pytanie", nil)

	assert.Equal(t, chat.SourceFallback, result.Source)
	assert.Equal(t, "Nie znam odpowiedzi, zostaw numer!", result.Answer)
}
