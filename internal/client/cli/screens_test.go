package cli

import (
	"testing"

	"github.com/dmelo-dev/luzpalavra/internal/client/catalog"
	"github.com/dmelo-dev/luzpalavra/internal/client/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentEngine is a speech engine that never produces audio.
type silentEngine struct {
	active bool
}

func (s *silentEngine) Speak(text string, onDone func()) error {
	s.active = true
	return nil
}
func (s *silentEngine) Pause() error  { return nil }
func (s *silentEngine) Resume() error { return nil }
func (s *silentEngine) Cancel()       { s.active = false }
func (s *silentEngine) Speaking() bool {
	return s.active
}

func TestLeavingReaderSilencesPlayer(t *testing.T) {
	vol, ok := catalog.VolumeByID(1)
	require.True(t, ok)
	day, ok := vol.DayByNumber(1)
	require.True(t, ok)

	engine := &silentEngine{}
	app := &App{
		player: speech.NewCoordinator(engine, speech.DefaultResumeGrace),
		screen: readerScreen{volume: vol, day: day},
	}

	_, err := app.player.Toggle(day.SpokenText())
	require.NoError(t, err)
	require.Equal(t, speech.StateSpeaking, app.player.State())

	app.navigate(dayListScreen{volume: vol})

	assert.Equal(t, speech.StateIdle, app.player.State())
	assert.False(t, engine.active)
}

func TestNavigateBetweenNonReaderScreensKeepsPlayerUntouched(t *testing.T) {
	engine := &silentEngine{}
	app := &App{
		player: speech.NewCoordinator(engine, speech.DefaultResumeGrace),
		screen: homeScreen{},
	}

	app.navigate(communityScreen{})
	app.navigate(settingsScreen{})

	assert.Equal(t, speech.StateIdle, app.player.State())
}

func TestScreenNames(t *testing.T) {
	assert.Equal(t, "início", homeScreen{}.name())
	assert.Equal(t, "leitura", readerScreen{}.name())
	assert.Equal(t, "ajustes", settingsScreen{}.name())
}
