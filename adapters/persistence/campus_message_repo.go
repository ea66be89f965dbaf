package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type postgresCampusMessageRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCampusMessageRepo(db *pgxpool.Pool, logger logger.Logger) message.BroadcastRepository {
	return &postgresCampusMessageRepo{db: db, logger: logger}
}

func (r *postgresCampusMessageRepo) Save(ctx context.Context, m *message.BroadcastMessage) error {
	query := `INSERT INTO campus_messages (id, user_id, message, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, query, m.ID, m.UserID, m.Body, m.CreatedAt); err != nil {
		return apperror.NewInternal("failed to save campus message", err)
	}
	return nil
}

func (r *postgresCampusMessageRepo) ListAll(ctx context.Context) ([]*message.BroadcastMessage, error) {
	query, args, err := psql.Select("m.id", "m.user_id", "m.message", "COALESCE(p.name, '')", "m.created_at").
		From("campus_messages m").
		LeftJoin("profiles p ON p.id = m.user_id").
		OrderBy("m.created_at ASC", "m.id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list campus messages query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query campus messages", err)
	}
	defer rows.Close()

	msgs := make([]*message.BroadcastMessage, 0)
	for rows.Next() {
		m := &message.BroadcastMessage{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Body, &m.SenderName, &m.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan campus message row", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating campus message rows", err)
	}
	return msgs, nil
}
