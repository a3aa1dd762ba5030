// Package speech reads a day's text aloud. The coordinator owns the
// speak/pause/resume lifecycle; the engine is whatever synthesizer the
// host offers.
package speech

import (
	"os/exec"
	"sync"
	"syscall"
)

// Engine is a text-to-speech backend. Implementations must tolerate
// Pause/Resume/Cancel in any state.
type Engine interface {
	// Speak starts reading text from the beginning, cancelling any
	// current utterance. onDone fires when the utterance finishes on
	// its own, not when it is cancelled.
	Speak(text string, onDone func()) error
	Pause() error
	Resume() error
	Cancel()
	// Speaking reports whether an utterance is actively producing
	// audio right now. A paused or finished utterance reports false.
	Speaking() bool
}

// Probe looks for a synthesizer binary on the host.
func Probe() (Engine, bool) {
	for _, bin := range []string{"espeak-ng", "espeak", "say"} {
		if path, err := exec.LookPath(bin); err == nil {
			return NewExecEngine(path), true
		}
	}
	return nil, false
}

// ExecEngine drives a synthesizer subprocess. Pause and resume are
// signal-based, which some hosts honor only partially; the coordinator's
// resume probe covers the hosts that do not.
type ExecEngine struct {
	mu     sync.Mutex
	bin    string
	cmd    *exec.Cmd
	paused bool
	gen    uint64
}

func NewExecEngine(bin string) *ExecEngine {
	return &ExecEngine{bin: bin}
}

func (e *ExecEngine) Speak(text string, onDone func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLocked()

	cmd := exec.Command(e.bin, text)
	if err := cmd.Start(); err != nil {
		return err
	}
	e.cmd = cmd
	e.paused = false
	e.gen++
	gen := e.gen

	go func() {
		_ = cmd.Wait()

		e.mu.Lock()
		finished := e.gen == gen
		if finished {
			e.cmd = nil
		}
		e.mu.Unlock()

		if finished && onDone != nil {
			onDone()
		}
	}()

	return nil
}

func (e *ExecEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	if err := e.cmd.Process.Signal(syscall.SIGSTOP); err != nil {
		return err
	}
	e.paused = true
	return nil
}

func (e *ExecEngine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	if err := e.cmd.Process.Signal(syscall.SIGCONT); err != nil {
		return err
	}
	e.paused = false
	return nil
}

func (e *ExecEngine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
}

func (e *ExecEngine) cancelLocked() {
	if e.cmd != nil && e.cmd.Process != nil {
		// a stopped process ignores SIGKILL until continued
		_ = e.cmd.Process.Signal(syscall.SIGCONT)
		_ = e.cmd.Process.Kill()
	}
	e.cmd = nil
	e.paused = false
	e.gen++
}

func (e *ExecEngine) Speaking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cmd != nil && !e.paused
}
