package promocodes

import (
	"context"

	"github.com/dmelo-dev/luzpalavra/internal/server/models"
)

type Repository interface {
	// ListUnused returns every code not yet redeemed, expired ones
	// included; expiry is the service's call.
	ListUnused(ctx context.Context) ([]models.PromoCode, error)
	// MarkUsed stamps the code as redeemed. Returns
	// common.ErrPromoUsed when another redemption won the race.
	MarkUsed(ctx context.Context, id string) error
	// Create stores a new code hash.
	Create(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error)
}
