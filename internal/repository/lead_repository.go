package repository

import (
	"context"

	"nexbe-contract/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type LeadRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewLeadRepository(db *pgxpool.Pool, logger *zap.Logger) *LeadRepository {
	return &LeadRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	query := squirrel.Insert("leads").
		Columns("id", "name", "phone", "consent", "source_message", "created_at").
		Values(lead.ID, lead.Name, lead.Phone, lead.Consent, lead.SourceMessage, lead.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *LeadRepository) List(ctx context.Context) ([]*models.Lead, error) {
	query := squirrel.Select("id", "name", "phone", "consent", "source_message", "created_at").
		From("leads").
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

	var leads []*models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Phone, &l.Consent, &l.SourceMessage, &l.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, &l)
	}

	return leads, rows.Err()
}
