package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		position TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		brand TEXT NOT NULL,
		battery_model TEXT NOT NULL,
		battery_capacity_kwh DOUBLE PRECISION NOT NULL,
		inverter_model TEXT NOT NULL,
		inverter_power_kw DOUBLE PRECISION NOT NULL,
		type TEXT NOT NULL,
		segment TEXT NOT NULL DEFAULT '',
		price_gross_a DOUBLE PRECISION NOT NULL,
		price_gross_b DOUBLE PRECISION NOT NULL,
		warranty_battery_years INT NOT NULL DEFAULT 0,
		warranty_inverter_years INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		contract_number TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL DEFAULT '',
		product_name TEXT NOT NULL DEFAULT '',
		gross_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_user_id ON contracts(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts(status)`,

	`CREATE TABLE IF NOT EXISTS knowledge_entries (
		id UUID PRIMARY KEY,
		position INT NOT NULL,
		keywords TEXT[] NOT NULL,
		answer TEXT NOT NULL,
		follow_up TEXT NOT NULL DEFAULT '',
		emotion TEXT NOT NULL DEFAULT '',
		costume TEXT NOT NULL DEFAULT '',
		scroll_target TEXT NOT NULL DEFAULT '',
		suggest_configurator BOOLEAN NOT NULL DEFAULT false,
		show_lead_prompt BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_knowledge_entries_position ON knowledge_entries(position)`,

	`CREATE TABLE IF NOT EXISTS leads (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL,
		consent BOOLEAN NOT NULL,
		source_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// InitSchema creates the application tables when they do not exist yet.
// Statements are idempotent, so running it on every start is safe.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	logger.Info("Database schema ready")
	return nil
}
