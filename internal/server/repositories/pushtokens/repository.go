package pushtokens

import (
	"context"

	"github.com/dmelo-dev/luzpalavra/internal/server/models"
)

type Repository interface {
	// Upsert registers token for email. Re-registering an existing
	// token moves it to the new email.
	Upsert(ctx context.Context, email, token string) error
	// ListAll returns every registered token, for the daily sender.
	ListAll(ctx context.Context) ([]models.PushToken, error)
	// Delete removes a token the push provider reported as gone.
	Delete(ctx context.Context, token string) error
}
