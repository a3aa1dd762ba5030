package services

import (
	"context"

	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/google/uuid"
)

// NotificationService manages the daily-reminder opt-in. Enabling mints
// a push token locally and registers it with the backend; the backend's
// scheduler does the actual sending.
type NotificationService interface {
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	Enabled() bool
	// ShouldPrompt: the one-time opt-in prompt has not been shown yet.
	ShouldPrompt() bool
	MarkPrompted(ctx context.Context) error
}

type notificationService struct {
	store   *state.Store
	backend Backend
}

func NewNotificationService(store *state.Store, backend Backend) NotificationService {
	return &notificationService{store: store, backend: backend}
}

func (s *notificationService) Enable(ctx context.Context) error {
	email := s.store.Email()
	if email == "" {
		return common.ErrEmailRequired
	}

	token := "fcm_token_" + uuid.NewString()
	if err := s.backend.RegisterToken(ctx, email, token); err != nil {
		return err
	}

	if err := s.store.SetNotificationsEnabled(ctx, true); err != nil {
		return err
	}
	return s.store.MarkNotifPrompted(ctx)
}

func (s *notificationService) Disable(ctx context.Context) error {
	return s.store.SetNotificationsEnabled(ctx, false)
}

func (s *notificationService) Enabled() bool {
	return s.store.NotificationsEnabled()
}

func (s *notificationService) ShouldPrompt() bool {
	return !s.store.NotifPrompted() && !s.store.NotificationsEnabled()
}

func (s *notificationService) MarkPrompted(ctx context.Context) error {
	return s.store.MarkNotifPrompted(ctx)
}
