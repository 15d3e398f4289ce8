package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"nexbe-contract/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ContractRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewContractRepository(db *pgxpool.Pool, logger *zap.Logger) *ContractRepository {
	return &ContractRepository{
		db:     db,
		logger: logger,
	}
}

var contractColumns = []string{
	"id", "user_id", "contract_number", "client_name", "product_name",
	"gross_price", "status", "data", "created_at", "updated_at",
}

func (r *ContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	data, err := json.Marshal(contract.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal contract data: %w", err)
	}

	query := squirrel.Insert("contracts").
		Columns(contractColumns...).
		Values(contract.ID, contract.UserID, contract.ContractNumber, contract.ClientName,
			contract.ProductName, contract.GrossPrice, contract.Status, data,
			contract.CreatedAt, contract.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	data, err := json.Marshal(contract.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal contract data: %w", err)
	}

	query := squirrel.Update("contracts").
		Set("contract_number", contract.ContractNumber).
		Set("client_name", contract.ClientName).
		Set("product_name", contract.ProductName).
		Set("gross_price", contract.GrossPrice).
		Set("status", contract.Status).
		Set("data", data).
		Set("updated_at", contract.UpdatedAt).
		Where(squirrel.Eq{"id": contract.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ContractRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContractStatus) error {
	query := squirrel.Update("contracts").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	query := squirrel.Select(contractColumns...).
		From("contracts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanOne(r.db.QueryRow(ctx, sql, args...))
}

func (r *ContractRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Contract, error) {
	query := squirrel.Select(contractColumns...).
		From("contracts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
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

	var contracts []*models.Contract
	for rows.Next() {
		c, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}

	return contracts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ContractRepository) scanOne(row rowScanner) (*models.Contract, error) {
	var c models.Contract
	var data []byte
	if err := row.Scan(
		&c.ID, &c.UserID, &c.ContractNumber, &c.ClientName, &c.ProductName,
		&c.GrossPrice, &c.Status, &data, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &c.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contract data: %w", err)
	}

	return &c, nil
}
