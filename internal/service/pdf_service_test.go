package service

import (
	"testing"

	"nexbe-contract/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func renderableContractData() *models.ContractData {
	return &models.ContractData{
		ContractNumber: "MSAN/001/02/2026",
		ContractDate:   "2026-02-16",
		ContractCity:   "Warszawa",
		Client: models.ClientData{
			FullName: "Jan Kowalski",
			PESEL:    "90010112345",
			Address: models.Address{
				Street: "ul. Słoneczna 5", PostalCode: "00-001", City: "Warszawa",
			},
		},
		Product: models.ProductSelection{
			Brand:              "Deye",
			Model:              "Deye SE-G5.1 Pro x2",
			BatteryCapacityKWh: 10.2,
			InverterModel:      "Deye SUN-5K-SG04LP1-EU",
			InverterPowerKW:    5,
		},
		Pricing: models.Pricing{
			OfferPrice:    10800,
			ContractPrice: 10800,
			GrossPrice:    10800,
			VATRate:       8,
			NetPrice:      10000,
			VATAmount:     800,
			Financing:     models.FinancingOwnFunds,
			Tranches: models.TrancheSchedule{
				T1Percent: 30, T1Amount: 3240,
				T2Percent: 60, T2Amount: 6480,
				T3Percent: 10, T3Amount: 1080,
			},
		},
	}
}

func TestDocumentFilename(t *testing.T) {
	assert.Equal(t, "Umowa_MSAN_001_02_2026.pdf", DocumentFilename("MSAN/001/02/2026"))
}

func TestRenderContractProducesPDF(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	out, err := svc.RenderContract(renderableContractData())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderContractWithAttachments(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	data := renderableContractData()
	base, err := svc.RenderContract(data)
	require.NoError(t, err)

	data.Attachments.PoaOSD = true
	data.Attachments.PoaSubsidy = true
	data.Attachments.SubsidyProgram = models.SubsidyMojPrad
	withPOA, err := svc.RenderContract(data)
	require.NoError(t, err)

	assert.Greater(t, len(withPOA), len(base), "power of attorney pages should grow the document")
}

func TestRenderContractRejectsIncompleteData(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	data := renderableContractData()
	data.ContractNumber = ""
	_, err := svc.RenderContract(data)
	assert.ErrorIs(t, err, ErrRenderInvalidData)

	data = renderableContractData()
	data.Client.FullName = ""
	_, err = svc.RenderContract(data)
	assert.ErrorIs(t, err, ErrRenderInvalidData)
}
