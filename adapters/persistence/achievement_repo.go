package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type postgresAchievementRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAchievementRepo(db *pgxpool.Pool, logger logger.Logger) profile.AchievementRepository {
	return &postgresAchievementRepo{db: db, logger: logger}
}

func (r *postgresAchievementRepo) Save(ctx context.Context, a *profile.Achievement) error {
	query := `
		INSERT INTO achievements (id, user_id, title, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, a.ID, a.UserID, a.Title, a.Description, a.Date, a.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save achievement", err)
	}
	return nil
}

func (r *postgresAchievementRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM achievements WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete achievement", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrAchievementNotFound
	}
	return nil
}

func (r *postgresAchievementRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*profile.Achievement, error) {
	query, args, err := psql.Select("id", "user_id", "title", "description", "date", "created_at").
		From("achievements").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC NULLS LAST", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list achievements query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query achievements", err)
	}
	defer rows.Close()

	achievements := make([]*profile.Achievement, 0)
	for rows.Next() {
		a := &profile.Achievement{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date, &a.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan achievement row", err)
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating achievement rows", err)
	}
	return achievements, nil
}
