package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/server/models"
)

func TestAccessGetUnknownEmail(t *testing.T) {
	s := NewAccessService(nil, newFakeRepoManager())

	_, found, err := s.Get(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestAccessGetNormalizesFreeTier(t *testing.T) {
	rm := newFakeRepoManager()
	rm.access.rows["a@b.com"] = models.Entitlements{Volume2: true}
	s := NewAccessService(nil, rm)

	ent, found, err := s.Get(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, ent.Volume1)
	assert.True(t, ent.Volume2)
	assert.False(t, ent.Volume3)
}

func TestAccessGrantVolumeMergesExisting(t *testing.T) {
	rm := newFakeRepoManager()
	rm.access.rows["a@b.com"] = models.Entitlements{Volume1: true, Volume2: true}
	s := NewAccessService(nil, rm)

	ent, err := s.Grant(context.Background(), "a@b.com", "volume_4")

	require.NoError(t, err)
	assert.True(t, ent.Volume2)
	assert.True(t, ent.Volume4)
	assert.False(t, ent.Volume3)
	assert.Equal(t, ent, rm.access.rows["a@b.com"])
}

func TestAccessGrantComboUnlocksEverything(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewAccessService(nil, rm)

	ent, err := s.Grant(context.Background(), "new@b.com", "combo_4")

	require.NoError(t, err)
	assert.Equal(t, models.Entitlements{Volume1: true, Volume2: true, Volume3: true, Volume4: true, Combo4: true}, ent)
}

func TestAccessGrantUnknownSKU(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewAccessService(nil, rm)

	_, err := s.Grant(context.Background(), "a@b.com", "volume_99")

	assert.ErrorIs(t, err, common.ErrUnknownProduct)
	assert.Empty(t, rm.access.rows)
}

func TestAccessGrantRepoError(t *testing.T) {
	rm := newFakeRepoManager()
	rm.access.getErr = errors.New("db down")
	s := NewAccessService(nil, rm)

	_, err := s.Grant(context.Background(), "a@b.com", "volume_2")
	assert.Error(t, err)
}

func TestAccessGrantVolumesLeavesComboOff(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewAccessService(nil, rm)

	ent, err := s.GrantVolumes(context.Background(), "promo@b.com")

	require.NoError(t, err)
	assert.Equal(t, models.Entitlements{Volume1: true, Volume2: true, Volume3: true, Volume4: true}, ent)
}
