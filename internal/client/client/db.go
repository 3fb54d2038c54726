package client

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/hopekeeper/internal/client/migrations"
	"github.com/dmitrijs2005/hopekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hopekeeper/internal/client/repositories/queue"
)

// Repositories are the local tables the client works with.
type Repositories struct {
	Metadata metadata.Repository
	Queue    queue.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Queue:    queue.NewSQLiteRepository(db),
	}
}

// InitDatabase opens the SQLite file at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
