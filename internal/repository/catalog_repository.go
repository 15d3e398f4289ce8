package repository

import (
	"context"

	"nexbe-contract/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CatalogRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCatalogRepository(db *pgxpool.Pool, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:     db,
		logger: logger,
	}
}

var catalogColumns = []string{
	"id", "name", "brand", "battery_model", "battery_capacity_kwh",
	"inverter_model", "inverter_power_kw", "type", "segment",
	"price_gross_a", "price_gross_b",
	"warranty_battery_years", "warranty_inverter_years",
	"created_at", "updated_at",
}

func (r *CatalogRepository) Create(ctx context.Context, p *models.CatalogProduct) error {
	query := squirrel.Insert("catalog_products").
		Columns(catalogColumns...).
		Values(p.ID, p.Name, p.Brand, p.BatteryModel, p.BatteryCapacityKWh,
			p.InverterModel, p.InverterPowerKW, p.Type, p.Segment,
			p.PriceGrossA, p.PriceGrossB,
			p.WarrantyBatteryYears, p.WarrantyInverterYears,
			p.CreatedAt, p.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CatalogProduct, error) {
	query := squirrel.Select(catalogColumns...).
		From("catalog_products").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.CatalogProduct
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.Name, &p.Brand, &p.BatteryModel, &p.BatteryCapacityKWh,
		&p.InverterModel, &p.InverterPowerKW, &p.Type, &p.Segment,
		&p.PriceGrossA, &p.PriceGrossB,
		&p.WarrantyBatteryYears, &p.WarrantyInverterYears,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *CatalogRepository) List(ctx context.Context) ([]*models.CatalogProduct, error) {
	query := squirrel.Select(catalogColumns...).
		From("catalog_products").
		OrderBy("brand", "name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.CatalogProduct
	for rows.Next() {
		var p models.CatalogProduct
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Brand, &p.BatteryModel, &p.BatteryCapacityKWh,
			&p.InverterModel, &p.InverterPowerKW, &p.Type, &p.Segment,
			&p.PriceGrossA, &p.PriceGrossB,
			&p.WarrantyBatteryYears, &p.WarrantyInverterYears,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}

	return products, rows.Err()
}
