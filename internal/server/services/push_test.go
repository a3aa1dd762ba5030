package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelo-dev/luzpalavra/internal/server/push"
	"github.com/dmelo-dev/luzpalavra/internal/timex"
)

func TestPushRegisterToken(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewPushService(nil, rm, newFakeSender(), testLogger{})

	require.NoError(t, s.RegisterToken(context.Background(), "a@b.com", "tok-1"))
	assert.Equal(t, "a@b.com", rm.push.tokens["tok-1"])

	require.NoError(t, s.RegisterToken(context.Background(), "c@d.com", "tok-1"))
	assert.Equal(t, "c@d.com", rm.push.tokens["tok-1"])
}

func TestSendDailyDeliversToAllTokens(t *testing.T) {
	rm := newFakeRepoManager()
	rm.push.tokens["tok-1"] = "a@b.com"
	rm.push.tokens["tok-2"] = "c@d.com"
	sender := newFakeSender()
	s := NewPushService(nil, rm, sender, testLogger{})

	require.NoError(t, s.SendDaily(context.Background()))
	assert.ElementsMatch(t, []string{"tok-1", "tok-2"}, sender.sent)
}

func TestSendDailyDropsGoneTokens(t *testing.T) {
	rm := newFakeRepoManager()
	rm.push.tokens["tok-live"] = "a@b.com"
	rm.push.tokens["tok-dead"] = "c@d.com"
	sender := newFakeSender()
	sender.errFor["tok-dead"] = push.ErrTokenGone
	s := NewPushService(nil, rm, sender, testLogger{})

	require.NoError(t, s.SendDaily(context.Background()))

	assert.Equal(t, []string{"tok-live"}, sender.sent)
	assert.NotContains(t, rm.push.tokens, "tok-dead")
	assert.Equal(t, 1, sender.callsOn["tok-dead"])
}

func TestSendDailyRetriesTransientFailure(t *testing.T) {
	rm := newFakeRepoManager()
	rm.push.tokens["tok-flaky"] = "a@b.com"
	sender := newFakeSender()
	sender.errFor["tok-flaky"] = errors.New("timeout")
	s := NewPushService(nil, rm, sender, testLogger{})

	require.NoError(t, s.SendDaily(context.Background()))

	assert.Equal(t, 4, sender.callsOn["tok-flaky"])
	assert.Contains(t, rm.push.tokens, "tok-flaky")
}

func TestSendDailyListFailure(t *testing.T) {
	rm := newFakeRepoManager()
	rm.push.listErr = errors.New("db down")
	s := NewPushService(nil, rm, newFakeSender(), testLogger{})

	assert.Error(t, s.SendDaily(context.Background()))
}

func TestNextDailyFireTime(t *testing.T) {
	loc, err := time.LoadLocation(dailyPushZone)
	require.NoError(t, err)

	morning := time.Date(2026, 3, 10, 6, 30, 0, 0, loc)
	next := timex.NextClockTime(morning, dailyPushHour, dailyPushMinute, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 7, 0, 0, 0, loc), next)

	evening := time.Date(2026, 3, 10, 21, 0, 0, 0, loc)
	next = timex.NextClockTime(evening, dailyPushHour, dailyPushMinute, loc)
	assert.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, loc), next)
}

func TestRunSchedulerStopsOnCancel(t *testing.T) {
	s := NewPushService(nil, newFakeRepoManager(), newFakeSender(), testLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunScheduler(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
