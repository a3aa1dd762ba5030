package services

import (
	"context"

	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/dmelo-dev/luzpalavra/internal/server/auth"
	"github.com/dmelo-dev/luzpalavra/internal/server/config"
	"github.com/dmelo-dev/luzpalavra/internal/server/payment"
)

type product struct {
	Title string
	Price float64
}

// products is the authoritative price table. The amount sent by the
// client is advisory only.
var products = map[string]product{
	"volume_2": {Title: "Luz da Palavra - Volume 2", Price: 9.90},
	"volume_3": {Title: "Luz da Palavra - Volume 3", Price: 9.90},
	"volume_4": {Title: "Luz da Palavra - Volume 4", Price: 9.90},
	"combo_4":  {Title: "Combo Especial (Todos os Volumes)", Price: 27.90},
}

// PaymentService creates checkout sessions and settles them when the
// payment provider confirms.
type PaymentService struct {
	config   *config.Config
	provider payment.Provider
	access   *AccessService
	logger   logging.Logger
}

func NewPaymentService(cfg *config.Config, provider payment.Provider, access *AccessService, logger logging.Logger) *PaymentService {
	return &PaymentService{config: cfg, provider: provider, access: access, logger: logger}
}

// CreateCheckout builds a checkout preference for the product and
// returns its init point URL. The external reference carries a signed
// claim of the buyer's email and SKU so the webhook can settle without
// any session storage.
func (s *PaymentService) CreateCheckout(ctx context.Context, email, sku string) (string, error) {
	p, ok := products[sku]
	if !ok {
		return "", common.ErrUnknownProduct
	}

	ref, err := auth.GeneratePayRef(email, sku, []byte(s.config.SecretKey), s.config.PayRefValidity)
	if err != nil {
		return "", err
	}

	initPoint, err := s.provider.CreatePreference(ctx, payment.Preference{
		Title:       p.Title,
		UnitPrice:   p.Price,
		PayerEmail:  email,
		ExternalRef: ref,
	})
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "checkout created", "sku", sku)
	return initPoint, nil
}

// Settle grants the purchased product after the provider confirms a
// payment. The external reference must be a valid unexpired pay ref.
func (s *PaymentService) Settle(ctx context.Context, externalRef string) error {
	email, sku, err := auth.ParsePayRef(externalRef, []byte(s.config.SecretKey))
	if err != nil {
		return err
	}

	if _, err := s.access.Grant(ctx, email, sku); err != nil {
		return err
	}

	s.logger.Info(ctx, "payment settled", "sku", sku)
	return nil
}
