package dto

import "nexbe-contract/internal/models"

type CreateContractRequest struct {
	ProductID      string `json:"product_id" validate:"required,uuid"`
	WithFullBackup bool   `json:"with_full_backup"`
	VATRate        int    `json:"vat_rate" validate:"omitempty,oneof=8 23"`
	EMS            string `json:"ems"`

	Client            models.ClientData   `json:"client" validate:"required"`
	CoOwner           *models.ClientData  `json:"co_owner,omitempty"`
	InvestmentAddress models.Address      `json:"investment_address"`
	ExistingPV        models.ExistingPV   `json:"existing_pv"`
	Declarations      models.Declarations `json:"declarations"`
	Attachments       models.Attachments  `json:"attachments"`
	SalesRep          models.SalesRep     `json:"sales_rep"`
}

type UpdatePricingRequest struct {
	ContractPrice        float64              `json:"contract_price"`
	VATRate              int                  `json:"vat_rate" validate:"omitempty,oneof=8 23"`
	Financing            models.FinancingType `json:"financing"`
	OwnContribution      float64              `json:"own_contribution,omitempty"`
	FinancingInstitution string               `json:"financing_institution,omitempty"`
}

// PriceValidationResponse reports the allowed band for the draft's offer
// price and whether the submitted candidate was inside it. The accepted
// price in the contract is always clamped to the band.
type PriceValidationResponse struct {
	Valid         bool    `json:"valid"`
	MinAllowed    float64 `json:"min_allowed"`
	MaxAllowed    float64 `json:"max_allowed"`
	PercentChange float64 `json:"percent_change"`
}

type ContractResponse struct {
	ID             string              `json:"id"`
	ContractNumber string              `json:"contract_number,omitempty"`
	ClientName     string              `json:"client_name"`
	ProductName    string              `json:"product_name"`
	GrossPrice     float64             `json:"gross_price"`
	Status         string              `json:"status"`
	StatusLabel    string              `json:"status_label"`
	Data           models.ContractData `json:"data"`
	CreatedAt      string              `json:"created_at"`
	UpdatedAt      string              `json:"updated_at"`
}

type UpdatePricingResponse struct {
	Contract   ContractResponse        `json:"contract"`
	Validation PriceValidationResponse `json:"validation"`
}

func NewContractResponse(c *models.Contract) ContractResponse {
	return ContractResponse{
		ID:             c.ID.String(),
		ContractNumber: c.ContractNumber,
		ClientName:     c.ClientName,
		ProductName:    c.ProductName,
		GrossPrice:     c.GrossPrice,
		Status:         string(c.Status),
		StatusLabel:    models.StatusLabel(c.Status),
		Data:           c.Data,
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
