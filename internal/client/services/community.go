package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/client/platform"
	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/common"
)

// WhatsAppCommunityURL is the official group invite.
const WhatsAppCommunityURL = "https://chat.whatsapp.com/IkqCQlm4gfo1KJWlJaZFch"

// geolocationTimeout bounds the position lookup for the nearby search.
const geolocationTimeout = 8 * time.Second

// CommunityService covers the community screen: joining the WhatsApp
// group and finding a church by text or by position.
type CommunityService interface {
	// JoinGroup opens the group invite. Without a stored email the
	// intent is deferred behind the email gate and gated=true returned.
	JoinGroup(ctx context.Context) (gated bool, err error)
	// SearchChurches opens a maps search for the query.
	SearchChurches(ctx context.Context, query string) error
	// NearbyChurches opens a maps search around the device position.
	NearbyChurches(ctx context.Context) error
}

type communityService struct {
	store  *state.Store
	opener platform.Opener
	geo    platform.Geolocator
}

func NewCommunityService(store *state.Store, opener platform.Opener, geo platform.Geolocator) CommunityService {
	return &communityService{store: store, opener: opener, geo: geo}
}

func (s *communityService) JoinGroup(ctx context.Context) (bool, error) {
	if s.store.Email() == "" {
		err := s.store.SetPendingAction(ctx, models.PendingAction{Type: models.PendingCommunity})
		return true, err
	}
	if s.opener == nil {
		return false, common.ErrorUnavailable
	}
	return false, s.opener.OpenURL(ctx, WhatsAppCommunityURL)
}

func (s *communityService) SearchChurches(ctx context.Context, query string) error {
	q := strings.TrimSpace("Igreja Cristã " + strings.TrimSpace(query))
	if q == "Igreja Cristã" {
		return common.ErrEmptyQuery
	}
	if s.opener == nil {
		return common.ErrorUnavailable
	}
	return s.opener.OpenURL(ctx,
		"https://www.google.com/maps/search/?api=1&query="+url.QueryEscape(q))
}

func (s *communityService) NearbyChurches(ctx context.Context) error {
	if s.geo == nil || s.opener == nil {
		return common.ErrorUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, geolocationTimeout)
	defer cancel()

	coords, err := s.geo.Current(ctx)
	if err != nil {
		return err
	}

	return s.opener.OpenURL(ctx, fmt.Sprintf(
		"https://www.google.com/maps/search/?api=1&query=Igreja+perto+de+mim&ll=%f,%f",
		coords.Lat, coords.Lon))
}
