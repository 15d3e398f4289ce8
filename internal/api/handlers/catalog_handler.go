package handlers

import (
	"nexbe-contract/internal/dto"
	"nexbe-contract/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalogRepo *repository.CatalogRepository
	logger      *zap.Logger
}

func NewCatalogHandler(catalogRepo *repository.CatalogRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListProducts godoc
// @Summary List catalog products
// @Description List all energy storage sets available for contract configuration
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CatalogProductResponse
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalogRepo.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list catalog products", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list catalog products",
		})
	}

	resp := make([]dto.CatalogProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.NewCatalogProductResponse(p))
	}

	return c.JSON(resp)
}
