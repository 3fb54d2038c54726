// Package repomanager hands out repositories bound to a *sql.DB or an open
// transaction, so services can run several repositories inside dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hopekeeper/internal/dbx"
	"github.com/dmitrijs2005/hopekeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/hopekeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/hopekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Records(db dbx.DBTX) records.Repository
}
