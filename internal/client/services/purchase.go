package services

import (
	"context"

	"github.com/dmelo-dev/luzpalavra/internal/client/catalog"
	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/client/platform"
	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
)

// PurchaseResult reports how an InitiatePurchase call ended.
type PurchaseResult struct {
	// Gated: no email yet; the intent is parked and the caller must
	// open the email gate.
	Gated bool
	// CheckoutURL is where the user completes payment.
	CheckoutURL string
	// Opened: the URL was handed to the host opener. When false the
	// caller shows the URL instead.
	Opened bool
}

// PurchaseService starts checkouts for the paid volumes.
type PurchaseService interface {
	// InitiatePurchase starts a checkout for sku. Without a stored
	// email, the intent is deferred and Gated is returned instead.
	InitiatePurchase(ctx context.Context, sku string) (PurchaseResult, error)
	// Product returns the catalog entry for sku.
	Product(sku string) (catalog.Product, bool)
}

type purchaseService struct {
	store   *state.Store
	backend Backend
	opener  platform.Opener
	logger  logging.Logger
}

func NewPurchaseService(store *state.Store, backend Backend, opener platform.Opener, logger logging.Logger) PurchaseService {
	return &purchaseService{store: store, backend: backend, opener: opener, logger: logger}
}

func (s *purchaseService) Product(sku string) (catalog.Product, bool) {
	p, ok := catalog.Products[sku]
	return p, ok
}

func (s *purchaseService) InitiatePurchase(ctx context.Context, sku string) (PurchaseResult, error) {
	product, ok := catalog.Products[sku]
	if !ok {
		return PurchaseResult{}, common.ErrUnknownProduct
	}

	email := s.store.Email()
	if email == "" {
		err := s.store.SetPendingAction(ctx, models.PendingAction{
			Type: models.PendingPurchase,
			SKU:  sku,
		})
		return PurchaseResult{Gated: true}, err
	}

	url, err := s.backend.CreatePayment(ctx, email, sku, product.Price)
	if err != nil {
		return PurchaseResult{}, err
	}

	result := PurchaseResult{CheckoutURL: url}
	if s.opener != nil {
		if err := s.opener.OpenURL(ctx, url); err != nil {
			s.logger.Warn(ctx, "could not open checkout url", "err", err)
		} else {
			result.Opened = true
		}
	}
	return result, nil
}
