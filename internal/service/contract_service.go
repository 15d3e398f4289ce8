package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexbe-contract/internal/dto"
	"nexbe-contract/internal/models"
	"nexbe-contract/internal/pricing"
	"nexbe-contract/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrNotDraft         = errors.New("contract is no longer a draft")
	ErrForbidden        = errors.New("contract belongs to a different user")
	ErrInvalidVATRate   = errors.New("vat rate must be 8 or 23")
)

// ContractStore is the persistence surface of ContractService.
type ContractStore interface {
	Create(ctx context.Context, contract *models.Contract) error
	Update(ctx context.Context, contract *models.Contract) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContractStatus) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Contract, error)
}

// CatalogStore looks up products for draft seeding.
type CatalogStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CatalogProduct, error)
}

// ContractService owns the contract draft lifecycle: seeding pricing
// from a catalog product, recomputing derived amounts on every price or
// VAT change, and freezing the record with a sequence number at
// generation time.
type ContractService struct {
	contracts ContractStore
	catalog   CatalogStore
	sequence  pricing.SequenceStore
	cfg       *config.ContractConfig
	logger    *zap.Logger

	now func() time.Time
}

func NewContractService(contracts ContractStore, catalog CatalogStore, sequence pricing.SequenceStore, cfg *config.ContractConfig, logger *zap.Logger) *ContractService {
	return &ContractService{
		contracts: contracts,
		catalog:   catalog,
		sequence:  sequence,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateDraft opens a new contract draft for the selected catalog
// product. Pricing is seeded from the product's offer price for the
// chosen backup variant; net, VAT and tranches are derived immediately.
func (s *ContractService) CreateDraft(ctx context.Context, userID uuid.UUID, req *dto.CreateContractRequest) (*models.Contract, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	offerPrice := product.OfferPrice(req.WithFullBackup)

	vatRate := req.VATRate
	if vatRate == 0 {
		vatRate = 8
	}
	if err := checkVATRate(vatRate); err != nil {
		return nil, err
	}

	p := models.Pricing{
		OfferPrice: offerPrice,
		VATRate:    vatRate,
		Financing:  models.FinancingOwnFunds,
	}
	if err := applyGross(&p, offerPrice); err != nil {
		return nil, err
	}

	now := s.now()
	data := models.ContractData{
		ContractDate:      now.Format("2006-01-02"),
		ContractCity:      s.cfg.City,
		Client:            req.Client,
		CoOwner:           req.CoOwner,
		InvestmentAddress: req.InvestmentAddress,
		ExistingPV:        req.ExistingPV,
		Product: models.ProductSelection{
			ID:                 product.ID.String(),
			Brand:              product.Brand,
			Model:              product.BatteryModel,
			BatteryCapacityKWh: product.BatteryCapacityKWh,
			InverterModel:      product.InverterModel,
			InverterPowerKW:    product.InverterPowerKW,
			Type:               string(product.Type),
			EMS:                req.EMS,
			BackupEPS:          !req.WithFullBackup,
		},
		Pricing:      p,
		Declarations: req.Declarations,
		Attachments:  req.Attachments,
		SalesRep:     req.SalesRep,
	}

	contract := &models.Contract{
		ID:          uuid.New(),
		UserID:      userID,
		ClientName:  req.Client.FullName,
		ProductName: product.Name,
		GrossPrice:  p.GrossPrice,
		Status:      models.ContractStatusDraft,
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to save contract draft: %w", err)
	}

	s.logger.Info("Contract draft created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("product", product.Name),
	)

	return contract, nil
}

// UpdatePricing applies a manual price or VAT-rate change to a draft.
// The candidate price is clamped into the ±5% band around the offer
// price before being accepted; the returned validation reports whether
// the original candidate was inside the band, so the caller can show a
// warning without blocking.
func (s *ContractService) UpdatePricing(ctx context.Context, userID, contractID uuid.UUID, req *dto.UpdatePricingRequest) (*models.Contract, *pricing.PriceValidation, error) {
	contract, err := s.getOwned(ctx, userID, contractID)
	if err != nil {
		return nil, nil, err
	}
	if contract.Status != models.ContractStatusDraft {
		return nil, nil, ErrNotDraft
	}

	p := &contract.Data.Pricing

	vatRate := req.VATRate
	if vatRate == 0 {
		vatRate = p.VATRate
	}
	if err := checkVATRate(vatRate); err != nil {
		return nil, nil, err
	}
	p.VATRate = vatRate

	candidate := req.ContractPrice
	if candidate == 0 {
		candidate = p.ContractPrice
	}

	validation, err := pricing.ValidatePriceChange(p.OfferPrice, candidate)
	if err != nil {
		return nil, nil, err
	}

	clamped, err := pricing.ClampPrice(p.OfferPrice, candidate)
	if err != nil {
		return nil, nil, err
	}
	gross, _ := clamped.Float64()

	if err := applyGross(p, gross); err != nil {
		return nil, nil, err
	}

	p.Financing = req.Financing
	if p.Financing == "" {
		p.Financing = models.FinancingOwnFunds
	}
	if p.Financing == models.FinancingOwnFunds {
		p.OwnContribution = 0
		p.FinancingInstitution = ""
	} else {
		p.OwnContribution = req.OwnContribution
		p.FinancingInstitution = req.FinancingInstitution
	}

	contract.GrossPrice = p.GrossPrice
	contract.UpdatedAt = s.now()

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, nil, fmt.Errorf("failed to save pricing update: %w", err)
	}

	if !validation.Valid {
		s.logger.Warn("Contract price outside allowed band, clamped",
			zap.String("contract_id", contract.ID.String()),
			zap.Float64("candidate", candidate),
			zap.Float64("accepted", gross),
		)
	}

	return contract, &validation, nil
}

// Generate freezes a draft: assigns the next period-scoped contract
// number, stamps the contract date and moves the status to GENERATED.
func (s *ContractService) Generate(ctx context.Context, userID, contractID uuid.UUID) (*models.Contract, error) {
	contract, err := s.getOwned(ctx, userID, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractStatusDraft {
		return nil, ErrNotDraft
	}

	now := s.now()
	number, err := pricing.NextContractNumber(ctx, s.sequence, now)
	if err != nil {
		return nil, err
	}

	contract.ContractNumber = number
	contract.Data.ContractNumber = number
	contract.Data.ContractDate = now.Format("2006-01-02")
	contract.Status = models.ContractStatusGenerated
	contract.UpdatedAt = now

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to save generated contract: %w", err)
	}

	s.logger.Info("Contract generated",
		zap.String("contract_id", contract.ID.String()),
		zap.String("contract_number", number),
	)

	return contract, nil
}

func (s *ContractService) Get(ctx context.Context, userID, contractID uuid.UUID) (*models.Contract, error) {
	return s.getOwned(ctx, userID, contractID)
}

func (s *ContractService) List(ctx context.Context, userID uuid.UUID) ([]*models.Contract, error) {
	return s.contracts.ListByUser(ctx, userID)
}

// MarkSentForSignature records that the contract left for the signature
// provider.
func (s *ContractService) MarkSentForSignature(ctx context.Context, userID, contractID uuid.UUID) error {
	contract, err := s.getOwned(ctx, userID, contractID)
	if err != nil {
		return err
	}
	if contract.Status != models.ContractStatusGenerated {
		return ErrNotDraft
	}
	return s.contracts.UpdateStatus(ctx, contractID, models.ContractStatusSentForSignature)
}

func (s *ContractService) getOwned(ctx context.Context, userID, contractID uuid.UUID) (*models.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, ErrContractNotFound
	}
	if contract.UserID != userID {
		return nil, ErrForbidden
	}
	return contract, nil
}

// applyGross recomputes every derived pricing field from a new gross
// amount.
func applyGross(p *models.Pricing, gross float64) error {
	breakdown, err := pricing.DecomposeGross(gross, p.VATRate)
	if err != nil {
		return err
	}
	tranches, err := pricing.SplitTranches(gross)
	if err != nil {
		return err
	}

	p.ContractPrice = gross
	p.GrossPrice = gross
	p.NetPrice, _ = breakdown.Net.Float64()
	p.VATAmount, _ = breakdown.VAT.Float64()
	p.Tranches = models.TrancheSchedule{
		T1Percent: pricing.Tranche1Percent,
		T2Percent: pricing.Tranche2Percent,
		T3Percent: pricing.Tranche3Percent,
	}
	p.Tranches.T1Amount, _ = tranches.T1.Float64()
	p.Tranches.T2Amount, _ = tranches.T2.Float64()
	p.Tranches.T3Amount, _ = tranches.T3.Float64()

	return nil
}

func checkVATRate(rate int) error {
	if rate != 8 && rate != 23 {
		return ErrInvalidVATRate
	}
	return nil
}
