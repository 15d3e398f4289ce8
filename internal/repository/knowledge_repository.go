package repository

import (
	"context"

	"nexbe-contract/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

var knowledgeColumns = []string{
	"id", "position", "keywords", "answer", "follow_up", "emotion",
	"costume", "scroll_target", "suggest_configurator", "show_lead_prompt",
	"created_at", "updated_at",
}

func (r *KnowledgeRepository) Create(ctx context.Context, e *models.KnowledgeEntry) error {
	query := squirrel.Insert("knowledge_entries").
		Columns(knowledgeColumns...).
		Values(e.ID, e.Position, e.Keywords, e.Answer, e.FollowUp, e.Emotion,
			e.Costume, e.ScrollTarget, e.SuggestConfigurator, e.ShowLeadPrompt,
			e.CreatedAt, e.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListAll returns the full knowledge base in registration order. The
// matcher's tie-break depends on this ordering.
func (r *KnowledgeRepository) ListAll(ctx context.Context) ([]models.KnowledgeEntry, error) {
	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_entries").
		OrderBy("position ASC").
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

	var entries []models.KnowledgeEntry
	for rows.Next() {
		var e models.KnowledgeEntry
		if err := rows.Scan(
			&e.ID, &e.Position, &e.Keywords, &e.Answer, &e.FollowUp, &e.Emotion,
			&e.Costume, &e.ScrollTarget, &e.SuggestConfigurator, &e.ShowLeadPrompt,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
