package access

import (
	"context"

	"github.com/dmelo-dev/luzpalavra/internal/server/models"
)

type Repository interface {
	// GetByEmail returns the access row for email, or
	// common.ErrorNotFound when the account has no record.
	GetByEmail(ctx context.Context, email string) (*models.Access, error)
	// Upsert writes the complete entitlement set for email, creating
	// the row on first contact.
	Upsert(ctx context.Context, email string, ent models.Entitlements) error
}
