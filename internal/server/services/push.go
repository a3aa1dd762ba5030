package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/dmelo-dev/luzpalavra/internal/server/push"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/repomanager"
	"github.com/dmelo-dev/luzpalavra/internal/timex"
)

const (
	dailyPushHour   = 7
	dailyPushMinute = 0
	dailyPushZone   = "America/Sao_Paulo"
)

var dailyMessage = push.Message{
	Title: "Hora do seu devocional 🙏",
	Body:  "Deus já preparou sua palavra de hoje.",
}

// PushService registers device tokens and runs the daily reminder.
type PushService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sender      push.Sender
	logger      logging.Logger
	now         func() time.Time
}

func NewPushService(db *sql.DB, rm repomanager.RepositoryManager, sender push.Sender, logger logging.Logger) *PushService {
	return &PushService{db: db, repomanager: rm, sender: sender, logger: logger, now: time.Now}
}

// RegisterToken stores the device token for the account. Re-registering
// the same token under another email moves it.
func (s *PushService) RegisterToken(ctx context.Context, email, token string) error {
	return s.repomanager.PushTokens(s.db).Upsert(ctx, email, token)
}

// RunScheduler fires the daily reminder at 07:00 São Paulo time until
// the context is cancelled.
func (s *PushService) RunScheduler(ctx context.Context) error {
	loc, err := time.LoadLocation(dailyPushZone)
	if err != nil {
		return err
	}

	for {
		next := timex.NextClockTime(s.now(), dailyPushHour, dailyPushMinute, loc)
		timer := time.NewTimer(next.Sub(s.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := s.SendDaily(ctx); err != nil {
			s.logger.Error(ctx, "daily push run failed", "error", err)
		}
	}
}

// SendDaily delivers the reminder to every registered token. Tokens the
// provider reports as gone are dropped; other failures are retried a
// few times and then logged, never fatal for the run.
func (s *PushService) SendDaily(ctx context.Context) error {
	repo := s.repomanager.PushTokens(s.db)

	tokens, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}

	sent := 0
	for _, t := range tokens {
		backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			err := s.sender.Send(ctx, t.Token, dailyMessage)
			if err != nil && !errors.Is(err, push.ErrTokenGone) {
				return retry.RetryableError(err)
			}
			return err
		})

		switch {
		case err == nil:
			sent++
		case errors.Is(err, push.ErrTokenGone):
			if derr := repo.Delete(ctx, t.Token); derr != nil {
				s.logger.Warn(ctx, "could not drop stale token", "error", derr)
			}
		default:
			s.logger.Warn(ctx, "push delivery failed", "error", err)
		}
	}

	s.logger.Info(ctx, "daily push run finished", "tokens", len(tokens), "sent", sent)
	return nil
}
