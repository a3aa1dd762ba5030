package services

import (
	"context"
	"strings"

	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
)

// RefreshOutcome tells the caller which notice to show after a refresh.
type RefreshOutcome int

const (
	// RefreshUpdated: the backend returned a record and it was applied.
	RefreshUpdated RefreshOutcome = iota
	// RefreshNoAccess: the backend has no record for this email.
	RefreshNoAccess
	// RefreshStale: a newer entitlement write landed while the request
	// was in flight; the response was dropped.
	RefreshStale
)

// EntitlementService answers which volumes are readable and keeps the
// local record in sync with the account backend.
type EntitlementService interface {
	IsUnlocked(volumeID int) bool
	Refresh(ctx context.Context) (RefreshOutcome, error)
	ActivateByCode(ctx context.Context, code string) error
}

type entitlementService struct {
	store   *state.Store
	backend Backend
	logger  logging.Logger
}

func NewEntitlementService(store *state.Store, backend Backend, logger logging.Logger) EntitlementService {
	return &entitlementService{store: store, backend: backend, logger: logger}
}

func (s *entitlementService) IsUnlocked(volumeID int) bool {
	return s.store.Unlocked(volumeID)
}

// Refresh replaces the local entitlement record with whatever the
// backend holds for the stored email. An empty backend record changes
// nothing; a response that raced a local entitlement write is dropped.
func (s *entitlementService) Refresh(ctx context.Context) (RefreshOutcome, error) {
	email := s.store.Email()
	if email == "" {
		return RefreshNoAccess, common.ErrEmailRequired
	}

	gen := s.store.EntitlementGen()

	remote, err := s.backend.GetAccess(ctx, email)
	if err != nil {
		return RefreshNoAccess, err
	}
	if remote == nil {
		return RefreshNoAccess, nil
	}

	applied, err := s.store.ApplyRefreshedEntitlements(ctx, *remote, gen)
	if err != nil {
		return RefreshNoAccess, err
	}
	if !applied {
		s.logger.Warn(ctx, "dropping stale entitlement refresh")
		return RefreshStale, nil
	}
	return RefreshUpdated, nil
}

// ActivateByCode redeems a promo code with the backend and, on
// acceptance, unlocks volumes 2 to 4 locally.
func (s *entitlementService) ActivateByCode(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return common.ErrEmptyPromoCode
	}
	email := s.store.Email()
	if email == "" {
		return common.ErrEmailRequired
	}

	if _, err := s.backend.ActivateCode(ctx, email, code); err != nil {
		return err
	}
	return s.store.GrantVolumes234(ctx)
}
