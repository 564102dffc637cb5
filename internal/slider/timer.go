package slider

import (
	"fmt"
	"time"
)

// TimerState is the observable state of a Timer.
//
//	        Start/Resume            fire
//	Idle ───────────────► Running ────────► Idle
//	  ▲                    │   ▲
//	  │ Cancel       Pause │   │ Resume
//	  │                    ▼   │
//	  └──────────────────── Paused
type TimerState int

const (
	// TimerIdle means no callback is scheduled.
	TimerIdle TimerState = iota
	// TimerRunning means the callback will fire unless canceled or paused.
	TimerRunning
	// TimerPaused means the remaining duration is captured and the callback withheld.
	TimerPaused
)

// String returns a human-readable representation of the timer state.
func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	default:
		return fmt.Sprintf("TimerState(%d)", int(s))
	}
}

// Timer is a cancelable, pausable one-shot delay.
//
// A Timer is confined to the goroutine that owns the engine, like the rest of
// the package. Each arming carries a generation number so a callback that was
// already queued on the dispatcher when Cancel or Pause ran is discarded
// instead of firing late.
type Timer struct {
	clock     Clock
	callback  func()
	state     TimerState
	deadline  time.Time
	remaining time.Duration
	stop      func() bool
	gen       uint64
}

// NewTimer returns an idle timer bound to clock. A nil clock runs callbacks
// directly on the runtime timer goroutine, which is only safe when the caller
// serializes access to the timer itself.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = NewDispatchClock(func(fn func()) { fn() })
	}
	return &Timer{clock: clock}
}

// StartTimer creates a timer and starts it.
func StartTimer(clock Clock, d time.Duration, callback func()) *Timer {
	t := NewTimer(clock)
	t.Start(d, callback)
	return t
}

// Start (re)arms the timer. Any pending callback is canceled first.
func (t *Timer) Start(d time.Duration, callback func()) {
	t.Cancel()
	t.callback = callback
	t.arm(d)
}

// Cancel stops the timer. The callback is guaranteed not to run afterwards.
func (t *Timer) Cancel() {
	t.disarm()
	t.state = TimerIdle
	t.remaining = 0
	t.callback = nil
}

// Pause withholds the callback and returns the remaining duration. Pausing a
// timer that is not running returns the captured remainder unchanged.
func (t *Timer) Pause() time.Duration {
	if t.state != TimerRunning {
		return t.remaining
	}
	t.disarm()
	remaining := t.deadline.Sub(t.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	t.remaining = remaining
	t.state = TimerPaused
	return remaining
}

// Resume re-arms a paused timer with the given remaining duration. It is a
// no-op unless the timer is paused.
func (t *Timer) Resume(remaining time.Duration) {
	if t.state != TimerPaused {
		return
	}
	t.arm(remaining)
}

// State returns the current timer state.
func (t *Timer) State() TimerState {
	if t == nil {
		return TimerIdle
	}
	return t.state
}

// Remaining returns the time left before the callback fires.
func (t *Timer) Remaining() time.Duration {
	switch t.state {
	case TimerRunning:
		if left := t.deadline.Sub(t.clock.Now()); left > 0 {
			return left
		}
		return 0
	case TimerPaused:
		return t.remaining
	default:
		return 0
	}
}

func (t *Timer) arm(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.gen++
	gen := t.gen
	t.state = TimerRunning
	t.remaining = d
	t.deadline = t.clock.Now().Add(d)
	t.stop = t.clock.AfterFunc(d, func() { t.fire(gen) })
}

func (t *Timer) disarm() {
	t.gen++
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

func (t *Timer) fire(gen uint64) {
	if gen != t.gen || t.state != TimerRunning {
		return
	}
	cb := t.callback
	t.stop = nil
	t.state = TimerIdle
	t.remaining = 0
	t.callback = nil
	if cb != nil {
		cb()
	}
}
