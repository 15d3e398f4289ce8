package handlers

import (
	"errors"

	"nexbe-contract/internal/dto"
	"nexbe-contract/internal/models"
	"nexbe-contract/internal/pricing"
	"nexbe-contract/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContractHandler struct {
	contractService  *service.ContractService
	pdfService       *service.PDFService
	signatureService *service.SignatureService
	logger           *zap.Logger
}

func NewContractHandler(contractService *service.ContractService, pdfService *service.PDFService, signatureService *service.SignatureService, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{
		contractService:  contractService,
		pdfService:       pdfService,
		signatureService: signatureService,
		logger:           logger,
	}
}

// CreateContract godoc
// @Summary Create a contract draft
// @Description Open a new contract draft seeded from a catalog product
// @Tags contracts
// @Accept json
// @Produce json
// @Param request body dto.CreateContractRequest true "Contract draft request"
// @Security BearerAuth
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/contracts [post]
func (h *ContractHandler) CreateContract(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Client.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Client full name is required",
		})
	}

	contract, err := h.contractService.CreateDraft(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		case errors.Is(err, service.ErrInvalidVATRate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "VAT rate must be 8 or 23",
			})
		}
		h.logger.Error("Failed to create contract draft", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create contract",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewContractResponse(contract))
}

// ListContracts godoc
// @Summary List contracts
// @Description List the authenticated representative's contracts
// @Tags contracts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ContractResponse
// @Router /api/v1/contracts [get]
func (h *ContractHandler) ListContracts(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	contracts, err := h.contractService.List(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list contracts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list contracts",
		})
	}

	resp := make([]dto.ContractResponse, 0, len(contracts))
	for _, contract := range contracts {
		resp = append(resp, dto.NewContractResponse(contract))
	}

	return c.JSON(resp)
}

// GetContract godoc
// @Summary Get a contract
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Security BearerAuth
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/contracts/{id} [get]
func (h *ContractHandler) GetContract(c *fiber.Ctx) error {
	userID, contractID, ok := h.ids(c)
	if !ok {
		return nil
	}

	contract, err := h.contractService.Get(c.Context(), userID, contractID)
	if err != nil {
		return h.contractError(c, err, "Failed to load contract")
	}

	return c.JSON(dto.NewContractResponse(contract))
}

// UpdatePricing godoc
// @Summary Update draft pricing
// @Description Apply a price or VAT-rate change; the price is clamped to the ±5% band around the offer price
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param request body dto.UpdatePricingRequest true "Pricing update"
// @Security BearerAuth
// @Success 200 {object} dto.UpdatePricingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/contracts/{id}/pricing [put]
func (h *ContractHandler) UpdatePricing(c *fiber.Ctx) error {
	userID, contractID, ok := h.ids(c)
	if !ok {
		return nil
	}

	var req dto.UpdatePricingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	contract, validation, err := h.contractService.UpdatePricing(c.Context(), userID, contractID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVATRate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "VAT rate must be 8 or 23",
			})
		case errors.Is(err, pricing.ErrInvalidArgument):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid price value",
			})
		}
		return h.contractError(c, err, "Failed to update pricing")
	}

	minAllowed, _ := validation.Min.Float64()
	maxAllowed, _ := validation.Max.Float64()
	percentChange, _ := validation.PercentChange.Float64()

	return c.JSON(dto.UpdatePricingResponse{
		Contract: dto.NewContractResponse(contract),
		Validation: dto.PriceValidationResponse{
			Valid:         validation.Valid,
			MinAllowed:    minAllowed,
			MaxAllowed:    maxAllowed,
			PercentChange: percentChange,
		},
	})
}

// GenerateContract godoc
// @Summary Generate a contract
// @Description Freeze the draft: assign the contract number and move to GENERATED
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Security BearerAuth
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/contracts/{id}/generate [post]
func (h *ContractHandler) GenerateContract(c *fiber.Ctx) error {
	userID, contractID, ok := h.ids(c)
	if !ok {
		return nil
	}

	contract, err := h.contractService.Generate(c.Context(), userID, contractID)
	if err != nil {
		return h.contractError(c, err, "Failed to generate contract")
	}

	return c.JSON(dto.NewContractResponse(contract))
}

// DownloadPDF godoc
// @Summary Download the contract document
// @Description Render the generated contract and its attachments as a PDF
// @Tags contracts
// @Produce application/pdf
// @Param id path string true "Contract ID"
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/contracts/{id}/pdf [get]
func (h *ContractHandler) DownloadPDF(c *fiber.Ctx) error {
	userID, contractID, ok := h.ids(c)
	if !ok {
		return nil
	}

	contract, err := h.contractService.Get(c.Context(), userID, contractID)
	if err != nil {
		return h.contractError(c, err, "Failed to load contract")
	}
	if contract.Status == models.ContractStatusDraft {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Contract must be generated before rendering",
		})
	}

	document, err := h.pdfService.RenderContract(&contract.Data)
	if err != nil {
		h.logger.Error("Failed to render contract document",
			zap.String("contract_number", contract.ContractNumber),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render document",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.DocumentFilename(contract.ContractNumber)+`"`)
	return c.Send(document)
}

// SendForSignature godoc
// @Summary Send for electronic signature
// @Description Placeholder for the Autenti e-signature integration
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Security BearerAuth
// @Success 200 {object} service.SignatureResult
// @Failure 404 {object} map[string]string
// @Router /api/v1/contracts/{id}/signature [post]
func (h *ContractHandler) SendForSignature(c *fiber.Ctx) error {
	userID, contractID, ok := h.ids(c)
	if !ok {
		return nil
	}

	contract, err := h.contractService.Get(c.Context(), userID, contractID)
	if err != nil {
		return h.contractError(c, err, "Failed to load contract")
	}

	result, err := h.signatureService.Send(c.Context(), contract.ContractNumber)
	if err != nil {
		h.logger.Error("Signature workflow failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Signature workflow failed",
		})
	}

	if err := h.contractService.MarkSentForSignature(c.Context(), userID, contractID); err != nil {
		return h.contractError(c, err, "Failed to record signature status")
	}

	return c.JSON(result)
}

// ids reads the authenticated user and the :id path parameter. When it
// reports false the error response has already been written.
func (h *ContractHandler) ids(c *fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
		return uuid.Nil, uuid.Nil, false
	}

	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid contract id",
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, contractID, true
}

func (h *ContractHandler) contractError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, service.ErrContractNotFound), errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Contract not found",
		})
	case errors.Is(err, service.ErrNotDraft):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Contract is no longer a draft",
		})
	}
	h.logger.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
	})
}
