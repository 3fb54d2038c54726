// Package records stores the per-user collections (mood entries, thought
// records, chat sessions and the rest). One table backs each collection and
// every query is scoped by the collection's table name, which is checked
// against entities.Collections before it reaches SQL.
package records

import (
	"context"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

type Repository interface {
	// List returns userID's rows, newest first by the collection's order column.
	List(ctx context.Context, userID, collection string) ([]entities.Row, error)
	// Insert stores values for userID and returns the stored row.
	Insert(ctx context.Context, userID, collection string, values map[string]any) (entities.Row, error)
	// Update applies set to the row identified by id and userID. It returns
	// common.ErrorNotFound when no such row exists.
	Update(ctx context.Context, userID, collection, id string, set map[string]any) (entities.Row, error)
	// Delete removes the row identified by id and userID and reports whether
	// one existed.
	Delete(ctx context.Context, userID, collection, id string) (bool, error)
}
