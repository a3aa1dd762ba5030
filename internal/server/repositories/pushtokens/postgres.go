package pushtokens

import (
	"context"
	"fmt"

	"github.com/dmelo-dev/luzpalavra/internal/dbx"
	"github.com/dmelo-dev/luzpalavra/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, email, token string) error {
	query :=
		`INSERT INTO push_tokens (email, token)
		 VALUES ($1, $2)
		 ON CONFLICT (token) DO UPDATE SET email = excluded.email
		 `

	_, err := r.db.ExecContext(ctx, query, email, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.PushToken, error) {
	query := `SELECT id, email, token, created_at FROM push_tokens ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tokens []models.PushToken
	for rows.Next() {
		var tk models.PushToken
		if err := rows.Scan(&tk.ID, &tk.Email, &tk.Token, &tk.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tokens = append(tokens, tk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tokens, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM push_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
