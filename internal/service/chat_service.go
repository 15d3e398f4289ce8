package service

import (
	"context"
	"fmt"
	"sync"

	"nexbe-contract/internal/chat"
	"nexbe-contract/internal/models"
	"nexbe-contract/pkg/config"

	"go.uber.org/zap"
)

// HistoryMessage is one prior turn of a chat session, passed through to
// the AI fallback for context.
type HistoryMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// TextGenerator produces a free-form answer for queries the knowledge
// base cannot cover. Implemented by LLMService.
type TextGenerator interface {
	Generate(ctx context.Context, query string, history []HistoryMessage) (string, error)
}

// CallBudget limits AI fallback calls per chat session. Take reserves
// one call and reports false once the budget is exhausted.
type CallBudget interface {
	Take(ctx context.Context, sessionID string) (bool, error)
}

// KnowledgeSource loads the static knowledge base.
type KnowledgeSource interface {
	ListAll(ctx context.Context) ([]models.KnowledgeEntry, error)
}

// ChatService answers widget messages: keyword matching against the
// knowledge base first, then a budget- and timeout-bounded GigaChat
// fallback, then the static fallback reply. It never returns an error to
// the caller for a well-formed message.
type ChatService struct {
	source    KnowledgeSource
	generator TextGenerator
	budget    CallBudget
	cfg       *config.ChatConfig
	logger    *zap.Logger

	mu        sync.RWMutex
	knowledge []models.KnowledgeEntry
}

func NewChatService(source KnowledgeSource, generator TextGenerator, budget CallBudget, cfg *config.ChatConfig, logger *zap.Logger) *ChatService {
	return &ChatService{
		source:    source,
		generator: generator,
		budget:    budget,
		cfg:       cfg,
		logger:    logger,
	}
}

// LoadKnowledge caches the knowledge base. Called once at startup;
// entries are immutable afterwards.
func (s *ChatService) LoadKnowledge(ctx context.Context) error {
	entries, err := s.source.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	s.mu.Lock()
	s.knowledge = entries
	s.mu.Unlock()

	s.logger.Info("Knowledge base loaded", zap.Int("entries", len(entries)))
	return nil
}

func (s *ChatService) matcherConfig() chat.MatcherConfig {
	return chat.MatcherConfig{
		ConfidenceThreshold: s.cfg.ConfidenceThreshold,
		FallbackMessage:     s.cfg.FallbackMessage,
		FallbackEmotion:     s.cfg.FallbackEmotion,
	}
}

// Respond picks the reply for one user message. sessionID scopes the AI
// call budget; history is forwarded to the AI fallback only.
func (s *ChatService) Respond(ctx context.Context, sessionID, message string, history []HistoryMessage) chat.MatchResult {
	s.mu.RLock()
	kb := s.knowledge
	s.mu.RUnlock()

	result := chat.Match(message, kb, s.matcherConfig())
	if result.Source == chat.SourceKnowledge {
		return result
	}

	if answer, ok := s.tryAIFallback(ctx, sessionID, message, history); ok {
		return chat.MatchResult{
			Answer:  answer,
			Score:   result.Score,
			Source:  chat.SourceAI,
			Emotion: "happy",
		}
	}

	return result
}

// tryAIFallback delegates to the generator when one is configured and
// the session budget allows. Every failure mode (budget store down,
// generation error, timeout) degrades to the static fallback instead of
// surfacing an error.
func (s *ChatService) tryAIFallback(ctx context.Context, sessionID, message string, history []HistoryMessage) (string, bool) {
	if s.generator == nil || sessionID == "" {
		return "", false
	}

	ok, err := s.budget.Take(ctx, sessionID)
	if err != nil {
		s.logger.Warn("AI call budget check failed, using static fallback", zap.Error(err))
		return "", false
	}
	if !ok {
		s.logger.Debug("AI call budget exhausted", zap.String("session_id", sessionID))
		return "", false
	}

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.AITimeout)
	defer cancel()

	answer, err := s.generator.Generate(genCtx, message, history)
	if err != nil {
		s.logger.Warn("AI fallback unavailable, using static fallback", zap.Error(err))
		return "", false
	}

	return answer, true
}
