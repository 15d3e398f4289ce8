package service

import (
	"context"
	"testing"
	"time"

	"nexbe-contract/internal/dto"
	"nexbe-contract/internal/models"
	"nexbe-contract/internal/pricing"
	"nexbe-contract/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeContractStore struct {
	contracts map[uuid.UUID]*models.Contract
}

func newFakeContractStore() *fakeContractStore {
	return &fakeContractStore{contracts: make(map[uuid.UUID]*models.Contract)}
}

func (s *fakeContractStore) Create(_ context.Context, c *models.Contract) error {
	cp := *c
	s.contracts[c.ID] = &cp
	return nil
}

func (s *fakeContractStore) Update(_ context.Context, c *models.Contract) error {
	cp := *c
	s.contracts[c.ID] = &cp
	return nil
}

func (s *fakeContractStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.ContractStatus) error {
	c, ok := s.contracts[id]
	if !ok {
		return ErrContractNotFound
	}
	c.Status = status
	return nil
}

func (s *fakeContractStore) GetByID(_ context.Context, id uuid.UUID) (*models.Contract, error) {
	c, ok := s.contracts[id]
	if !ok {
		return nil, ErrContractNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeContractStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Contract, error) {
	var out []*models.Contract
	for _, c := range s.contracts {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCatalogStore struct {
	products map[uuid.UUID]*models.CatalogProduct
}

func (s *fakeCatalogStore) GetByID(_ context.Context, id uuid.UUID) (*models.CatalogProduct, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func testProduct() *models.CatalogProduct {
	return &models.CatalogProduct{
		ID:                 uuid.New(),
		Name:               "Zestaw Deye 5 kW / 10 kWh",
		Brand:              "Deye",
		BatteryModel:       "Deye SE-G5.1 Pro x2",
		BatteryCapacityKWh: 10.2,
		InverterModel:      "Deye SUN-5K-SG04LP1-EU",
		InverterPowerKW:    5,
		Type:               models.ProductTypeDCHybrid,
		PriceGrossA:        10800,
		PriceGrossB:        12960,
	}
}

func newTestContractService(store *fakeContractStore, product *models.CatalogProduct) *ContractService {
	catalog := &fakeCatalogStore{products: map[uuid.UUID]*models.CatalogProduct{product.ID: product}}
	svc := NewContractService(store, catalog, pricing.NewMemorySequenceStore(), &config.ContractConfig{City: "Warszawa"}, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, time.February, 16, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func draftRequest(product *models.CatalogProduct) *dto.CreateContractRequest {
	return &dto.CreateContractRequest{
		ProductID: product.ID.String(),
		Client:    models.ClientData{FullName: "Jan Kowalski"},
	}
}

func TestCreateDraftSeedsPricingFromOfferPrice(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	contract, err := svc.CreateDraft(context.Background(), uuid.New(), draftRequest(product))
	require.NoError(t, err)

	p := contract.Data.Pricing
	assert.Equal(t, models.ContractStatusDraft, contract.Status)
	assert.Equal(t, 10800.0, p.OfferPrice)
	assert.Equal(t, 10800.0, p.GrossPrice)
	assert.Equal(t, 8, p.VATRate)
	assert.Equal(t, 10000.0, p.NetPrice)
	assert.Equal(t, 800.0, p.VATAmount)
	assert.Equal(t, 3240.0, p.Tranches.T1Amount)
	assert.Equal(t, 6480.0, p.Tranches.T2Amount)
	assert.Equal(t, 1080.0, p.Tranches.T3Amount)
	assert.Equal(t, models.FinancingOwnFunds, p.Financing)
	assert.Equal(t, "2026-02-16", contract.Data.ContractDate)
	assert.Equal(t, "Warszawa", contract.Data.ContractCity)
	assert.Empty(t, contract.ContractNumber)
}

func TestCreateDraftFullBackupVariant(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	req := draftRequest(product)
	req.WithFullBackup = true

	contract, err := svc.CreateDraft(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, 12960.0, contract.Data.Pricing.OfferPrice)
	assert.False(t, contract.Data.Product.BackupEPS)
}

func TestCreateDraftRejectsUnknownProduct(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	req := draftRequest(product)
	req.ProductID = uuid.NewString()

	_, err := svc.CreateDraft(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateDraftRejectsInvalidVATRate(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	req := draftRequest(product)
	req.VATRate = 19

	_, err := svc.CreateDraft(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrInvalidVATRate)
}

func TestUpdatePricingWithinBand(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	userID := uuid.New()
	contract, err := svc.CreateDraft(context.Background(), userID, draftRequest(product))
	require.NoError(t, err)

	updated, validation, err := svc.UpdatePricing(context.Background(), userID, contract.ID, &dto.UpdatePricingRequest{
		ContractPrice: 10300,
	})
	require.NoError(t, err)

	assert.True(t, validation.Valid)
	assert.Equal(t, 10300.0, updated.Data.Pricing.GrossPrice)
	assert.Equal(t, 10800.0, updated.Data.Pricing.OfferPrice)
	// derived amounts follow the new gross
	assert.InDelta(t, 9537.04, updated.Data.Pricing.NetPrice, 0.001)
	assert.InDelta(t, 762.96, updated.Data.Pricing.VATAmount, 0.001)
}

func TestUpdatePricingClampsOutOfBandPrice(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	userID := uuid.New()
	contract, err := svc.CreateDraft(context.Background(), userID, draftRequest(product))
	require.NoError(t, err)

	// 9000 is below the -5% floor of 10260
	updated, validation, err := svc.UpdatePricing(context.Background(), userID, contract.ID, &dto.UpdatePricingRequest{
		ContractPrice: 9000,
	})
	require.NoError(t, err)

	assert.False(t, validation.Valid)
	min, _ := validation.Min.Float64()
	assert.Equal(t, 10260.0, min)
	assert.Equal(t, 10260.0, updated.Data.Pricing.GrossPrice)
	assert.Equal(t, 10260.0, updated.GrossPrice)
}

func TestUpdatePricingSwitchesVATRate(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	userID := uuid.New()
	contract, err := svc.CreateDraft(context.Background(), userID, draftRequest(product))
	require.NoError(t, err)

	updated, _, err := svc.UpdatePricing(context.Background(), userID, contract.ID, &dto.UpdatePricingRequest{
		VATRate: 23,
	})
	require.NoError(t, err)

	p := updated.Data.Pricing
	assert.Equal(t, 23, p.VATRate)
	assert.Equal(t, 10800.0, p.GrossPrice)
	assert.InDelta(t, 8780.49, p.NetPrice, 0.001)
	assert.InDelta(t, 2019.51, p.VATAmount, 0.001)
}

func TestUpdatePricingClearsFinancingFieldsForOwnFunds(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	userID := uuid.New()
	contract, err := svc.CreateDraft(context.Background(), userID, draftRequest(product))
	require.NoError(t, err)

	updated, _, err := svc.UpdatePricing(context.Background(), userID, contract.ID, &dto.UpdatePricingRequest{
		Financing:            models.FinancingOwnFunds,
		OwnContribution:      5000,
		FinancingInstitution: "Bank X",
	})
	require.NoError(t, err)

	assert.Zero(t, updated.Data.Pricing.OwnContribution)
	assert.Empty(t, updated.Data.Pricing.FinancingInstitution)
}

func TestUpdatePricingRejectsNonDraft(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	userID := uuid.New()
	contract, err := svc.CreateDraft(context.Background(), userID, draftRequest(product))
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), userID, contract.ID)
	require.NoError(t, err)

	_, _, err = svc.UpdatePricing(context.Background(), userID, contract.ID, &dto.UpdatePricingRequest{ContractPrice: 10300})
	assert.ErrorIs(t, err, ErrNotDraft)
}

func TestUpdatePricingRejectsForeignContract(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	owner := uuid.New()
	contract, err := svc.CreateDraft(context.Background(), owner, draftRequest(product))
	require.NoError(t, err)

	_, _, err = svc.UpdatePricing(context.Background(), uuid.New(), contract.ID, &dto.UpdatePricingRequest{ContractPrice: 10300})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGenerateAssignsSequentialNumbers(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	userID := uuid.New()
	ctx := context.Background()

	first, err := svc.CreateDraft(ctx, userID, draftRequest(product))
	require.NoError(t, err)
	second, err := svc.CreateDraft(ctx, userID, draftRequest(product))
	require.NoError(t, err)

	genFirst, err := svc.Generate(ctx, userID, first.ID)
	require.NoError(t, err)
	genSecond, err := svc.Generate(ctx, userID, second.ID)
	require.NoError(t, err)

	assert.Equal(t, "MSAN/001/02/2026", genFirst.ContractNumber)
	assert.Equal(t, "MSAN/002/02/2026", genSecond.ContractNumber)
	assert.Equal(t, models.ContractStatusGenerated, genFirst.Status)
	assert.Equal(t, genFirst.ContractNumber, genFirst.Data.ContractNumber)
}

func TestGenerateRejectsAlreadyGenerated(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	userID := uuid.New()
	contract, err := svc.CreateDraft(context.Background(), userID, draftRequest(product))
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), userID, contract.ID)
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), userID, contract.ID)
	assert.ErrorIs(t, err, ErrNotDraft)
}

func TestMarkSentForSignature(t *testing.T) {
	store := newFakeContractStore()
	product := testProduct()
	svc := newTestContractService(store, product)

	userID := uuid.New()
	contract, err := svc.CreateDraft(context.Background(), userID, draftRequest(product))
	require.NoError(t, err)

	// a draft cannot be sent before generation
	err = svc.MarkSentForSignature(context.Background(), userID, contract.ID)
	assert.ErrorIs(t, err, ErrNotDraft)

	_, err = svc.Generate(context.Background(), userID, contract.ID)
	require.NoError(t, err)

	require.NoError(t, svc.MarkSentForSignature(context.Background(), userID, contract.ID))

	got, err := store.GetByID(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusSentForSignature, got.Status)
}
