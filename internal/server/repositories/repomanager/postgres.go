package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmelo-dev/luzpalavra/internal/dbx"
	"github.com/dmelo-dev/luzpalavra/internal/server/migrations"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/access"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/promocodes"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/pushtokens"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Access(db dbx.DBTX) access.Repository {
	return access.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) PushTokens(db dbx.DBTX) pushtokens.Repository {
	return pushtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) PromoCodes(db dbx.DBTX) promocodes.Repository {
	return promocodes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
