package speech

import (
	"sync"
	"time"
)

// State is the coordinator's playback state.
type State int

const (
	StateIdle State = iota
	StateSpeaking
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateSpeaking:
		return "speaking"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// DefaultResumeGrace is how long after a resume the coordinator waits
// before checking that audio actually restarted.
const DefaultResumeGrace = 200 * time.Millisecond

// Coordinator holds the single playback slot. One utterance exists at a
// time, identified by its exact text.
type Coordinator struct {
	mu         sync.Mutex
	engine     Engine
	state      State
	activeText string
	grace      time.Duration

	// schedule is a seam so tests can fire the resume probe by hand.
	schedule func(d time.Duration, f func())

	// gen invalidates stale onDone callbacks and resume probes after
	// the utterance they belong to is gone.
	gen uint64
}

func NewCoordinator(engine Engine, grace time.Duration) *Coordinator {
	if grace <= 0 {
		grace = DefaultResumeGrace
	}
	return &Coordinator{
		engine:   engine,
		grace:    grace,
		schedule: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle advances the playback cycle for text. The same text cycles
// speak, pause, resume; a different text cancels the current utterance
// and starts over from its beginning. Returns the resulting state.
func (c *Coordinator) Toggle(text string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle && text != c.activeText {
		c.engine.Cancel()
		return c.speakLocked(text)
	}

	switch c.state {
	case StateIdle:
		return c.speakLocked(text)

	case StateSpeaking:
		if err := c.engine.Pause(); err != nil {
			return c.state, err
		}
		c.state = StatePaused
		return c.state, nil

	default: // StatePaused
		if err := c.engine.Resume(); err != nil {
			return c.state, err
		}
		c.state = StateSpeaking
		gen := c.gen
		c.schedule(c.grace, func() { c.verifyResume(gen) })
		return c.state, nil
	}
}

func (c *Coordinator) speakLocked(text string) (State, error) {
	c.gen++
	gen := c.gen
	if err := c.engine.Speak(text, func() { c.utteranceDone(gen) }); err != nil {
		c.state = StateIdle
		c.activeText = ""
		return c.state, err
	}
	c.state = StateSpeaking
	c.activeText = text
	return c.state, nil
}

// verifyResume runs once per resume, after the grace period. If the
// engine never actually restarted audio, the utterance is replayed from
// the beginning. Losing the position is acceptable; staying silently
// stuck is not.
func (c *Coordinator) verifyResume(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.state != StateSpeaking {
		return
	}
	if c.engine.Speaking() {
		return
	}

	c.engine.Cancel()
	_, _ = c.speakLocked(c.activeText)
}

// Stop forces the slot back to idle, cancelling any utterance. Called
// whenever the reading screen is left.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateIdle {
		return
	}
	c.engine.Cancel()
	c.gen++
	c.state = StateIdle
	c.activeText = ""
}

func (c *Coordinator) utteranceDone(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.state = StateIdle
	c.activeText = ""
}
