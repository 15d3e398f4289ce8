package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductType string

const (
	ProductTypeACRetrofit ProductType = "AC_RETROFIT"
	ProductTypeDCHybrid   ProductType = "DC_HYBRID"
)

// CatalogProduct is a storage system from the sales catalog. Variant A
// ships with basic EPS backup, variant B with a full SZR changeover
// switch; the two variants carry different gross offer prices.
type CatalogProduct struct {
	ID                    uuid.UUID   `db:"id"`
	Name                  string      `db:"name"`
	Brand                 string      `db:"brand"`
	BatteryModel          string      `db:"battery_model"`
	BatteryCapacityKWh    float64     `db:"battery_capacity_kwh"`
	InverterModel         string      `db:"inverter_model"`
	InverterPowerKW       float64     `db:"inverter_power_kw"`
	Type                  ProductType `db:"type"`
	Segment               string      `db:"segment"`
	PriceGrossA           float64     `db:"price_gross_a"`
	PriceGrossB           float64     `db:"price_gross_b"`
	WarrantyBatteryYears  int         `db:"warranty_battery_years"`
	WarrantyInverterYears int         `db:"warranty_inverter_years"`
	CreatedAt             time.Time   `db:"created_at"`
	UpdatedAt             time.Time   `db:"updated_at"`
}

// OfferPrice returns the catalog gross price for the chosen backup
// variant.
func (p *CatalogProduct) OfferPrice(withFullBackup bool) float64 {
	if withFullBackup {
		return p.PriceGrossB
	}
	return p.PriceGrossA
}
