package promocodes

import (
	"context"
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

func (r *PostgresRepository) ListUnused(ctx context.Context) ([]models.PromoCode, error) {
	query :=
		`SELECT id, code_hash, expires_at, used_at, created_at FROM promo_codes
		 WHERE used_at IS NULL
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var codes []models.PromoCode
	for rows.Next() {
		var c models.PromoCode
		if err := rows.Scan(&c.ID, &c.CodeHash, &c.ExpiresAt, &c.UsedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		codes = append(codes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return codes, nil
}

// MarkUsed is conditional on the code still being unused, so two
// concurrent redemptions cannot both succeed.
func (r *PostgresRepository) MarkUsed(ctx context.Context, id string) error {
	query := `UPDATE promo_codes SET used_at = now() WHERE id = $1 AND used_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrPromoUsed
	}

	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error) {
	query :=
		`INSERT INTO promo_codes (code_hash, expires_at)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, code.CodeHash, code.ExpiresAt).Scan(&code.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return code, nil
}
