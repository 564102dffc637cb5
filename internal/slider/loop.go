package slider

import (
	"context"
	"fmt"
)

const defaultLoopBuffer = 64

// Loop runs posted functions one at a time on the goroutine that calls Run.
// Engine types are not safe for concurrent use; posting every trigger and
// every timer callback to one Loop gives them a single owner.
type Loop struct {
	queue chan func()
	done  chan struct{}
	clock *DispatchClock
}

// NewLoop returns a loop with the given queue capacity (zero uses a default).
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = defaultLoopBuffer
	}
	l := &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	l.clock = NewDispatchClock(func(fn func()) { l.Post(fn) })
	return l
}

// Clock returns a clock whose callbacks run on the loop.
func (l *Loop) Clock() Clock { return l.clock }

// Dispatcher returns Post as a Dispatcher.
func (l *Loop) Dispatcher() Dispatcher {
	return func(fn func()) { l.Post(fn) }
}

// Post queues fn. It returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call posts fn and waits for its result. It must not be called from the
// loop goroutine.
func (l *Loop) Call(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if !l.Post(func() { result <- fn() }) {
		return fmt.Errorf("loop call: loop stopped: %w", ErrContextMisuse)
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return fmt.Errorf("loop call: loop stopped: %w", ErrContextMisuse)
	}
}

// Run executes posted functions until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}
