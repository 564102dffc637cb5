package slider

import (
	"sync"
	"time"
)

// Clock is the only source of wall-clock scheduling for the engine. The
// default implementation uses system time; tests inject a fake clock to
// control timing deterministically.
type Clock interface {
	Now() time.Time
	// AfterFunc arranges for fn to run once after d. The returned stop
	// function prevents the call if it has not started yet.
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// Dispatcher runs fn on the goroutine that owns the engine. Loop.Post and a
// Bubble Tea program's Send (wrapped in a message) both satisfy it.
type Dispatcher func(fn func())

// DispatchClock is a system-time Clock whose callbacks are handed to a
// Dispatcher instead of running on the runtime timer goroutine. This keeps
// every timer callback on the same goroutine as the public API.
type DispatchClock struct {
	mu       sync.RWMutex
	dispatch Dispatcher
}

// NewDispatchClock returns a clock that delivers callbacks through dispatch.
// A nil dispatch may be attached later with Attach.
func NewDispatchClock(dispatch Dispatcher) *DispatchClock {
	return &DispatchClock{dispatch: dispatch}
}

// Attach sets the dispatcher. Callbacks that fire while no dispatcher is
// attached are dropped.
func (c *DispatchClock) Attach(dispatch Dispatcher) {
	c.mu.Lock()
	c.dispatch = dispatch
	c.mu.Unlock()
}

// Now returns the current system time.
func (c *DispatchClock) Now() time.Time { return time.Now() }

// AfterFunc schedules fn through the dispatcher after d.
func (c *DispatchClock) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, func() {
		c.mu.RLock()
		dispatch := c.dispatch
		c.mu.RUnlock()
		if dispatch != nil {
			dispatch(fn)
		}
	})
	return t.Stop
}
