package handlers

import (
	"strings"

	"nexbe-contract/internal/dto"
	"nexbe-contract/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Respond godoc
// @Summary Answer a chat widget message
// @Description Answer a visitor message from the knowledge base, with an AI fallback for unmatched queries
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/chat [post]
func (h *ChatHandler) Respond(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	history := make([]service.HistoryMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, service.HistoryMessage{
			Text:   m.Text,
			Sender: m.Sender,
		})
	}

	result := h.chatService.Respond(c.Context(), req.SessionID, req.Message, history)

	return c.JSON(dto.ChatResponse{
		Answer:              result.Answer,
		FollowUp:            result.FollowUp,
		Score:               result.Score,
		Source:              string(result.Source),
		Emotion:             result.Emotion,
		Costume:             result.Costume,
		ScrollTarget:        result.ScrollTarget,
		SuggestConfigurator: result.SuggestConfigurator,
		ShowLeadPrompt:      result.ShowLeadPrompt,
	})
}
