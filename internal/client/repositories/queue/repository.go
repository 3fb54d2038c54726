// Package queue persists the offline write queue in the client's SQLite
// database. Every mutation touches the table: Enqueue inserts one row and
// Ack deletes one row.
package queue

import (
	"context"
	"encoding/json"
)

// Item is one write waiting for the server. UserID is the account that
// made it. Type tells the replayer which entity Payload holds; EnqueuedAt is
// Unix milliseconds.
type Item struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"userId"`
	Type       string          `db:"type" json:"type"`
	Payload    json.RawMessage `db:"payload" json:"data"`
	EnqueuedAt int64           `db:"enqueued_at" json:"timestamp"`
}

// Repository keeps items in enqueue order. Reads and Clear only see the
// items of one user.
type Repository interface {
	Enqueue(ctx context.Context, item Item) error
	// Pending returns userID's items, oldest first.
	Pending(ctx context.Context, userID string) ([]Item, error)
	// Ack removes the item with id. Acking an unknown id is not an error.
	Ack(ctx context.Context, id string) error
	Count(ctx context.Context, userID string) (int, error)
	Clear(ctx context.Context, userID string) error
}
