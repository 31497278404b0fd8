package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/2beens/fitrack/internal/workouts/sessions"
)

// DefaultTickInterval is granular enough for a visibly smooth
// elapsed-seconds counter.
const DefaultTickInterval = 250 * time.Millisecond

type State string

const (
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

var (
	ErrNotRunning       = errors.New("timer is not running")
	ErrNotPaused        = errors.New("timer is not paused")
	ErrAlreadyCompleted = errors.New("timer already completed")
)

// Clock is the time source of a Timer, replaceable in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Timer tracks the elapsed active time of one workout session, with
// pause/resume support. Paused time is excluded from the elapsed time.
// Completed is terminal: no transition leads out of it.
//
// Pause history is not persisted backend-side, so a timer loaded for
// an already completed session reports plain endedAt - startedAt.
type Timer struct {
	mu    sync.Mutex
	clock Clock

	startedAt      time.Time
	state          State
	pausedTotal    time.Duration
	pauseStartedAt time.Time

	// elapsed time frozen at the moment of completion
	completedElapsed time.Duration
}

// New creates a timer for the given session. A session with endedAt
// already set loads directly into Completed. A nil clock means wall
// clock time.
func New(session *sessions.WorkoutSession, clock Clock) *Timer {
	if clock == nil {
		clock = realClock{}
	}

	t := &Timer{
		clock:     clock,
		startedAt: session.StartedAt,
		state:     StateRunning,
	}

	if session.EndedAt != nil && !session.EndedAt.IsZero() {
		t.state = StateCompleted
		t.completedElapsed = session.EndedAt.Sub(session.StartedAt)
		if t.completedElapsed < 0 {
			t.completedElapsed = 0
		}
	}

	return t
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Pause stops the elapsed time from advancing.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateCompleted:
		return ErrAlreadyCompleted
	case StatePaused:
		return ErrNotRunning
	}

	t.pauseStartedAt = t.clock.Now()
	t.state = StatePaused
	return nil
}

// Resume adds the current pause duration to the paused total and lets
// the elapsed time advance again.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateRunning:
		return ErrNotPaused
	}

	t.pausedTotal += t.clock.Now().Sub(t.pauseStartedAt)
	t.pauseStartedAt = time.Time{}
	t.state = StateRunning
	return nil
}

// Complete freezes the timer at the current elapsed time. The frozen
// local value is a stand-in until the backend-computed duration of the
// completed session is reloaded.
func (t *Timer) Complete() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateCompleted {
		return ErrAlreadyCompleted
	}

	now := t.clock.Now()
	if t.state == StatePaused {
		t.pausedTotal += now.Sub(t.pauseStartedAt)
		t.pauseStartedAt = time.Time{}
	}

	t.completedElapsed = now.Sub(t.startedAt) - t.pausedTotal
	if t.completedElapsed < 0 {
		t.completedElapsed = 0
	}
	t.state = StateCompleted
	return nil
}

// ElapsedSeconds returns the active (non-paused) time since the
// session started, in whole seconds.
func (t *Timer) ElapsedSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var elapsed time.Duration
	switch t.state {
	case StateCompleted:
		elapsed = t.completedElapsed
	case StatePaused:
		elapsed = t.pauseStartedAt.Sub(t.startedAt) - t.pausedTotal
	default:
		elapsed = t.clock.Now().Sub(t.startedAt) - t.pausedTotal
	}

	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Second)
}

// PausedTotal returns the accumulated paused duration, excluding a
// pause still in progress.
func (t *Timer) PausedTotal() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pausedTotal
}

// Run polls the timer on a fixed interval and reports the elapsed
// seconds via onTick, for as long as the timer is running. It returns
// nil once the timer leaves Running (paused or completed), or ctx.Err()
// when the context gets cancelled first. An interval <= 0 means
// DefaultTickInterval.
func (t *Timer) Run(ctx context.Context, interval time.Duration, onTick func(elapsedSeconds int)) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if t.State() != StateRunning {
				return nil
			}
			onTick(t.ElapsedSeconds())
		}
	}
}
