package service

import (
	"context"
	"fmt"
	"strings"

	"nexbe-contract/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// LLMService wraps the GigaChat client used by the chat assistant's AI
// fallback path.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

// buildPersonaInstruction is the system prompt of the Nexbi assistant.
func buildPersonaInstruction() string {
	return `Jesteś Nexbi, asystentem energetycznym firmy NEXBE. Doradzasz klientom w sprawie przydomowych magazynów energii do istniejących instalacji fotowoltaicznych.

# ZASADY

1. Odpowiadasz wyłącznie po polsku, krótko i konkretnie (maksymalnie 3-4 zdania).
2. Tematy: magazyny energii, rozbudowa instalacji PV, ceny i finansowanie, montaż, dotacje (Mój Prąd, Czyste Powietrze), autokonsumpcja.
3. Nie podajesz wiążących cen ani terminów - zachęcasz do kontaktu z doradcą.
4. Jeśli pytanie wykracza poza Twoje tematy, grzecznie to zaznacz i wróć do magazynów energii.
5. Nigdy nie wymyślasz parametrów technicznych produktów.`
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildPersonaInstruction()
	model.Temperature = 0.3

	return &LLMService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate answers a user query given the recent conversation history.
// The caller bounds the call with a context timeout; any error here makes
// the chat service fall back to its static reply.
func (s *LLMService) Generate(ctx context.Context, query string, history []HistoryMessage) (string, error) {
	messages := make([]gigago.Message, 0, len(history)+1)
	for _, h := range history {
		role := gigago.RoleUser
		if h.Sender != "user" {
			role = gigago.RoleAssistant
		}
		messages = append(messages, gigago.Message{Role: role, Content: h.Text})
	}
	messages = append(messages, gigago.Message{Role: gigago.RoleUser, Content: query})

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("empty response from LLM")
	}

	s.logger.Info("AI fallback answer generated", zap.Int("answer_length", len(answer)))

	return answer, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
