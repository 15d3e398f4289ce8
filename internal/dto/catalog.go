package dto

import "nexbe-contract/internal/models"

type CatalogProductResponse struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Brand                 string  `json:"brand"`
	BatteryModel          string  `json:"battery_model"`
	BatteryCapacityKWh    float64 `json:"battery_capacity_kwh"`
	InverterModel         string  `json:"inverter_model"`
	InverterPowerKW       float64 `json:"inverter_power_kw"`
	Type                  string  `json:"type"`
	Segment               string  `json:"segment"`
	PriceGrossA           float64 `json:"price_gross_a"`
	PriceGrossB           float64 `json:"price_gross_b"`
	WarrantyBatteryYears  int     `json:"warranty_battery_years"`
	WarrantyInverterYears int     `json:"warranty_inverter_years"`
}

func NewCatalogProductResponse(p *models.CatalogProduct) CatalogProductResponse {
	return CatalogProductResponse{
		ID:                    p.ID.String(),
		Name:                  p.Name,
		Brand:                 p.Brand,
		BatteryModel:          p.BatteryModel,
		BatteryCapacityKWh:    p.BatteryCapacityKWh,
		InverterModel:         p.InverterModel,
		InverterPowerKW:       p.InverterPowerKW,
		Type:                  string(p.Type),
		Segment:               p.Segment,
		PriceGrossA:           p.PriceGrossA,
		PriceGrossB:           p.PriceGrossB,
		WarrantyBatteryYears:  p.WarrantyBatteryYears,
		WarrantyInverterYears: p.WarrantyInverterYears,
	}
}
