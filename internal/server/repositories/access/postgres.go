package access

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/dbx"
	"github.com/dmelo-dev/luzpalavra/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Access, error) {
	query :=
		`SELECT id, email, volume_1, volume_2, volume_3, volume_4, combo_4, updated_at FROM access
		 WHERE email = $1
		 `

	a := &models.Access{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&a.ID, &a.Email,
		&a.Ent.Volume1, &a.Ent.Volume2, &a.Ent.Volume3, &a.Ent.Volume4, &a.Ent.Combo4,
		&a.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, email string, ent models.Entitlements) error {
	query :=
		`INSERT INTO access (email, volume_1, volume_2, volume_3, volume_4, combo_4, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (email) DO UPDATE SET
		   volume_1 = excluded.volume_1,
		   volume_2 = excluded.volume_2,
		   volume_3 = excluded.volume_3,
		   volume_4 = excluded.volume_4,
		   combo_4 = excluded.combo_4,
		   updated_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query, email,
		ent.Volume1, ent.Volume2, ent.Volume3, ent.Volume4, ent.Combo4)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
