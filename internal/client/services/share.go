package services

import (
	"context"
	"fmt"

	"github.com/dmelo-dev/luzpalavra/internal/client/catalog"
	"github.com/dmelo-dev/luzpalavra/internal/client/platform"
	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/netx"
)

// CardFormat selects the status-image aspect.
type CardFormat string

const (
	CardFormatStory CardFormat = "story" // 1080x1920
	CardFormatFeed  CardFormat = "feed"  // 1080x1080
)

// Card describes a status image to be rasterized by a rendering
// frontend. This layer only prepares and publishes it.
type Card struct {
	Format   CardFormat
	Width    int
	Height   int
	Gradient catalog.Gradient
	Phrase   string
	Ref      string
	Day      int
	VolumeID int
}

// ShareService builds share captions and publishes status images through
// backend-issued upload slots.
type ShareService interface {
	// Caption formats the day's share text for messaging apps.
	Caption(volumeID int, day catalog.Day) string
	// CopyCaption puts the caption on the host clipboard.
	CopyCaption(ctx context.Context, volumeID int, day catalog.Day) error
	// BuildCard resolves the card geometry and gradient for the day.
	BuildCard(format CardFormat, gradientID string, volumeID int, day catalog.Day) Card
	// PublishStatus uploads rendered image bytes and returns the public
	// URL to share.
	PublishStatus(ctx context.Context, format CardFormat, image []byte, contentType string) (string, error)
}

type shareService struct {
	store     *state.Store
	backend   Backend
	clipboard platform.Clipboard
}

func NewShareService(store *state.Store, backend Backend, clipboard platform.Clipboard) ShareService {
	return &shareService{store: store, backend: backend, clipboard: clipboard}
}

func (s *shareService) Caption(volumeID int, day catalog.Day) string {
	total := 7
	if v, ok := catalog.VolumeByID(volumeID); ok {
		total = len(v.Days)
	}
	return fmt.Sprintf(`📖 Luz da Palavra — Dia %d (Vol %d)

"%s"
%s

✅ Progresso: %d/%d

Baixe o app: luzdapalavra.app #LuzDaPalavra #Devocional #Fé`,
		day.Day, volumeID, day.AnchorPhrase, day.Reference, day.Day, total)
}

func (s *shareService) CopyCaption(ctx context.Context, volumeID int, day catalog.Day) error {
	if s.clipboard == nil {
		return common.ErrorUnavailable
	}
	return s.clipboard.Copy(ctx, s.Caption(volumeID, day))
}

func (s *shareService) BuildCard(format CardFormat, gradientID string, volumeID int, day catalog.Day) Card {
	w, h := 1080, 1920
	if format == CardFormatFeed {
		h = 1080
	}
	return Card{
		Format:   format,
		Width:    w,
		Height:   h,
		Gradient: catalog.GradientByID(gradientID),
		Phrase:   day.AnchorPhrase,
		Ref:      day.Reference,
		Day:      day.Day,
		VolumeID: volumeID,
	}
}

func (s *shareService) PublishStatus(ctx context.Context, format CardFormat, image []byte, contentType string) (string, error) {
	uploadURL, publicURL, err := s.backend.CreateStatusUpload(ctx, s.store.DeviceID(), string(format))
	if err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, uploadURL, image, contentType); err != nil {
		return "", err
	}
	return publicURL, nil
}
