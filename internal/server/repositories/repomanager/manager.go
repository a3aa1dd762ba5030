package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmelo-dev/luzpalavra/internal/dbx"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/access"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/promocodes"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/pushtokens"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Access(db dbx.DBTX) access.Repository
	PushTokens(db dbx.DBTX) pushtokens.Repository
	PromoCodes(db dbx.DBTX) promocodes.Repository
}
