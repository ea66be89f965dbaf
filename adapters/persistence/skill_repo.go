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

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) profile.SkillRepository {
	return &postgresSkillRepo{db: db, logger: logger}
}

func (r *postgresSkillRepo) Save(ctx context.Context, s *profile.Skill) error {
	query := `
		INSERT INTO skills (id, user_id, skill_name, skill_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, s.ID, s.UserID, s.Name, s.Type, s.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save skill", err)
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrSkillNotFound
	}
	return nil
}

func (r *postgresSkillRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*profile.Skill, error) {
	query, args, err := psql.Select("id", "user_id", "skill_name", "skill_type", "created_at").
		From("skills").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list skills query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills", err)
	}
	defer rows.Close()

	skills := make([]*profile.Skill, 0)
	for rows.Next() {
		s := &profile.Skill{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Type, &s.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan skill row", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill rows", err)
	}
	return skills, nil
}
