package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/tardis/internal/dbx"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/characters"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/journeys"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/messages"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// run the same repository code on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Characters(db dbx.DBTX) characters.Repository
	Journeys(db dbx.DBTX) journeys.Repository
	Messages(db dbx.DBTX) messages.Repository
}
