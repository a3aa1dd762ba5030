// Package services contains the application services of the client: the
// logic between the screens and the local store / remote backend.
package services

import (
	"context"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
)

// Backend is the remote account API surface the services depend on.
// *api.Client satisfies it; tests substitute a fake.
type Backend interface {
	GetAccess(ctx context.Context, email string) (*models.Entitlements, error)
	CreatePayment(ctx context.Context, email, sku string, value float64) (string, error)
	RegisterToken(ctx context.Context, email, token string) error
	ActivateCode(ctx context.Context, email, code string) (*models.Entitlements, error)
	CreateStatusUpload(ctx context.Context, deviceID, format string) (uploadURL, publicURL string, err error)
}
