package handlers

import (
	"time"

	"nexbe-contract/internal/dto"
	"nexbe-contract/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LeadHandler struct {
	leadService *service.LeadService
	logger      *zap.Logger
}

func NewLeadHandler(leadService *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// CreateLead godoc
// @Summary Capture a callback lead
// @Description Capture a phone number left in the chat widget for a callback
// @Tags leads
// @Accept json
// @Produce json
// @Param request body dto.CreateLeadRequest true "Lead request"
// @Success 201 {object} dto.LeadResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/leads [post]
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Phone number is required",
		})
	}

	lead, err := h.leadService.Capture(c.Context(), &req)
	if err != nil {
		if err == service.ErrConsentRequired {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Consent is required",
			})
		}
		h.logger.Error("Failed to capture lead", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to capture lead",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.LeadResponse{
		ID:        lead.ID.String(),
		Name:      lead.Name,
		Phone:     lead.Phone,
		CreatedAt: lead.CreatedAt.Format(time.RFC3339),
	})
}

// ListLeads godoc
// @Summary List captured leads
// @Description List callback leads, newest first
// @Tags leads
// @Produce json
// @Success 200 {array} dto.LeadResponse
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/leads [get]
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	leads, err := h.leadService.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list leads", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list leads",
		})
	}

	resp := make([]dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		resp = append(resp, dto.LeadResponse{
			ID:        l.ID.String(),
			Name:      l.Name,
			Phone:     l.Phone,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(resp)
}
