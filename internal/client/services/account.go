package services

import (
	"context"
	"strings"

	"github.com/dmelo-dev/luzpalavra/internal/client/api"
	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/common"
)

// AccountService owns the optional email identity and the single
// deferred action held while the email gate is open.
//
// Contract:
//   - SubmitEmail: validate, persist, and hand back the deferred action
//     (if any) so the caller can resume it.
//   - HasEmail: whether purchases, refreshes and notifications may
//     proceed without the gate.
type AccountService interface {
	SubmitEmail(ctx context.Context, email string) (*models.PendingAction, error)
	HasEmail() bool
	Email() string
	Defer(ctx context.Context, action models.PendingAction) error
}

type accountService struct {
	store *state.Store
}

func NewAccountService(store *state.Store) AccountService {
	return &accountService{store: store}
}

// SubmitEmail stores the address and pops the deferred action queued
// behind the gate. The only validation is the presence of an "@"; the
// backend tolerates anything beyond that.
func (a *accountService) SubmitEmail(ctx context.Context, email string) (*models.PendingAction, error) {
	normalized := api.NormalizeEmail(email)
	if !strings.Contains(normalized, "@") {
		return nil, common.ErrInvalidEmail
	}
	if err := a.store.SetEmail(ctx, normalized); err != nil {
		return nil, err
	}
	return a.store.TakePendingAction(ctx)
}

func (a *accountService) HasEmail() bool {
	return a.store.Email() != ""
}

func (a *accountService) Email() string {
	return a.store.Email()
}

// Defer queues the action to resume after the email gate. A second
// gated action overwrites the first.
func (a *accountService) Defer(ctx context.Context, action models.PendingAction) error {
	return a.store.SetPendingAction(ctx, action)
}
