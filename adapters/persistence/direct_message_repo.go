package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type postgresDirectMessageRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresDirectMessageRepo(db *pgxpool.Pool, logger logger.Logger) message.DirectRepository {
	return &postgresDirectMessageRepo{db: db, logger: logger}
}

var directMessageColumns = []string{
	"m.id", "m.sender_id", "m.receiver_id", "m.message", "m.file_url", "m.file_name",
	"m.file_preview_url", "COALESCE(p.name, '')", "m.created_at",
}

func scanDirectMessage(row pgx.Row) (*message.DirectMessage, error) {
	m := &message.DirectMessage{}
	err := row.Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.FileURL, &m.FileName,
		&m.FilePreviewURL, &m.SenderName, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, message.ErrMessageNotFound
		}
		return nil, apperror.NewInternal("failed to scan direct message row", err)
	}
	return m, nil
}

func selectDirectMessages() sq.SelectBuilder {
	return psql.Select(directMessageColumns...).
		From("direct_messages m").
		LeftJoin("profiles p ON p.id = m.sender_id")
}

func (r *postgresDirectMessageRepo) Save(ctx context.Context, m *message.DirectMessage) error {
	query := `
		INSERT INTO direct_messages (id, sender_id, receiver_id, message, file_url, file_name, file_preview_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.SenderID, m.ReceiverID, m.Body, m.FileURL, m.FileName, m.FilePreviewURL, m.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save direct message", err)
	}
	return nil
}

func (r *postgresDirectMessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*message.DirectMessage, error) {
	query, args, err := selectDirectMessages().Where(sq.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find direct message query", err)
	}
	return scanDirectMessage(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresDirectMessageRepo) ListBetween(ctx context.Context, a, b uuid.UUID) ([]*message.DirectMessage, error) {
	query, args, err := selectDirectMessages().
		Where(sq.Or{
			sq.Eq{"m.sender_id": a, "m.receiver_id": b},
			sq.Eq{"m.sender_id": b, "m.receiver_id": a},
		}).
		OrderBy("m.created_at ASC", "m.id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list direct messages query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query direct messages", err)
	}
	defer rows.Close()

	msgs := make([]*message.DirectMessage, 0)
	for rows.Next() {
		m, err := scanDirectMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating direct message rows", err)
	}
	return msgs, nil
}

func (r *postgresDirectMessageRepo) SetPreviewURL(ctx context.Context, id uuid.UUID, url string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE direct_messages SET file_preview_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return apperror.NewInternal("failed to update direct message preview", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return message.ErrMessageNotFound
	}
	return nil
}
