package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/campus-connect/internal/domain/connection"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type postgresConnectionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresConnectionRepo(db *pgxpool.Pool, logger logger.Logger) connection.Repository {
	return &postgresConnectionRepo{db: db, logger: logger}
}

var connectionColumns = []string{"id", "user_id", "connected_user_id", "status", "created_at", "updated_at"}

func scanConnection(row pgx.Row) (*connection.Connection, error) {
	c := &connection.Connection{}
	err := row.Scan(&c.ID, &c.UserID, &c.ConnectedUserID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, connection.ErrConnectionNotFound
		}
		return nil, apperror.NewInternal("failed to scan connection row", err)
	}
	return c, nil
}

func scanConnections(rows pgx.Rows) ([]*connection.Connection, error) {
	defer rows.Close()
	conns := make([]*connection.Connection, 0)
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating connection rows", err)
	}
	return conns, nil
}

func eitherParty(userID uuid.UUID) sq.Or {
	return sq.Or{sq.Eq{"user_id": userID}, sq.Eq{"connected_user_id": userID}}
}

func (r *postgresConnectionRepo) Save(ctx context.Context, c *connection.Connection) error {
	query := `
		INSERT INTO connections (id, user_id, connected_user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, c.ID, c.UserID, c.ConnectedUserID, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return connection.ErrAlreadyExists
		}
		return apperror.NewInternal("failed to save connection", err)
	}
	return nil
}

func (r *postgresConnectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*connection.Connection, error) {
	query, args, err := psql.Select(connectionColumns...).
		From("connections").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find connection query", err)
	}
	return scanConnection(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresConnectionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*connection.Connection, error) {
	query, args, err := psql.Select(connectionColumns...).
		From("connections").
		Where(eitherParty(userID)).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list connections query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query connections", err)
	}
	return scanConnections(rows)
}

func (r *postgresConnectionRepo) ListAccepted(ctx context.Context, userID uuid.UUID) ([]*connection.Connection, error) {
	query, args, err := psql.Select(connectionColumns...).
		From("connections").
		Where(sq.And{eitherParty(userID), sq.Eq{"status": connection.StatusAccepted}}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list accepted connections query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query accepted connections", err)
	}
	return scanConnections(rows)
}

func (r *postgresConnectionRepo) FindBetween(ctx context.Context, a, b uuid.UUID) (*connection.Connection, error) {
	query, args, err := psql.Select(connectionColumns...).
		From("connections").
		Where(sq.Or{
			sq.Eq{"user_id": a, "connected_user_id": b},
			sq.Eq{"user_id": b, "connected_user_id": a},
		}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find connection between query", err)
	}
	return scanConnection(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresConnectionRepo) MarkAccepted(ctx context.Context, id uuid.UUID, recipient uuid.UUID) error {
	query := `
		UPDATE connections SET status = $3, updated_at = NOW()
		WHERE id = $1 AND connected_user_id = $2 AND status = $4
	`
	cmdTag, err := r.db.Exec(ctx, query, id, recipient, connection.StatusAccepted, connection.StatusPending)
	if err != nil {
		return apperror.NewInternal("failed to accept connection", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return connection.ErrNotPending
	}
	return nil
}
