package queue

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/dmitrijs2005/hopekeeper/internal/dbx"
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, item Item) error {
	query, args, err := sqlite.Insert("offline_queue").
		Columns("id", "user_id", "type", "payload", "enqueued_at").
		Values(item.ID, item.UserID, item.Type, []byte(item.Payload), item.EnqueuedAt).
		ToSql()
	if err == nil {
		_, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", item.Type, err)
	}
	return nil
}

func (r *SQLiteRepository) Pending(ctx context.Context, userID string) ([]Item, error) {
	query, args, err := sqlite.Select("id", "user_id", "type", "payload", "enqueued_at").
		From("offline_queue").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}

	var items []Item
	if err := sqlscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) Ack(ctx context.Context, id string) error {
	query, args, err := sqlite.Delete("offline_queue").Where(sq.Eq{"id": id}).ToSql()
	if err == nil {
		_, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("failed to ack %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM offline_queue WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count queue: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, userID string) error {
	query, args, err := sqlite.Delete("offline_queue").Where(sq.Eq{"user_id": userID}).ToSql()
	if err == nil {
		_, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}
