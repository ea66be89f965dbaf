package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var profileColumns = []string{"id", "name", "department", "bio", "email", "created_at", "updated_at"}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(&p.ID, &p.Name, &p.Department, &p.Bio, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find profile query", err)
	}
	return scanProfile(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresProfileRepo) ListExcept(ctx context.Context, id uuid.UUID) ([]*profile.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.NotEq{"id": id}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profiles query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, name FROM profiles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profile names", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, apperror.NewInternal("failed to scan profile name", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile names", err)
	}
	return names, nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles SET
			name = $2, department = $3, bio = $4, updated_at = NOW()
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, p.ID, p.Name, p.Department, p.Bio)
	if err != nil {
		return apperror.NewInternal("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
