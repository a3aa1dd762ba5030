package cli

import (
	"github.com/dmelo-dev/luzpalavra/internal/client/catalog"
)

// Screen is the current place in the app. Each variant carries the data
// it renders, already resolved; the reader holds the day record itself,
// never just an id.
type Screen interface {
	name() string
}

type homeScreen struct{}

func (homeScreen) name() string { return "início" }

type dayListScreen struct {
	volume catalog.Volume
}

func (dayListScreen) name() string { return "dias" }

type readerScreen struct {
	volume catalog.Volume
	day    catalog.Day
}

func (readerScreen) name() string { return "leitura" }

type progressScreen struct{}

func (progressScreen) name() string { return "progresso" }

type communityScreen struct{}

func (communityScreen) name() string { return "comunidade" }

type settingsScreen struct{}

func (settingsScreen) name() string { return "ajustes" }

// navigate switches the current screen. Leaving the reader always
// silences the player, so audio never outlives the text it reads.
func (a *App) navigate(to Screen) {
	if _, leavingReader := a.screen.(readerScreen); leavingReader {
		if a.player != nil {
			a.player.Stop()
		}
	}
	a.screen = to
}
