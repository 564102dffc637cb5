package slider

import "fmt"

// Action is an imperative transition entry point handed to the host.
type Action func() error

// Bridge lets code outside the host's render tree trigger transitions.
//
// The host supplies two setters at construction. Bind assigns the bound
// controller's GoToNext/GoToPrevious into them whenever the controller
// changes; Unbind replaces them with actions that fail with
// ErrContextMisuse so a stale reference cannot drive a torn-down slider.
type Bridge struct {
	setNext     func(Action)
	setPrevious func(Action)
	dispatch    Dispatcher
	logger      Logger
	bound       *Controller
}

// NewBridge returns a bridge that writes into the given slots. Either setter
// may be nil.
func NewBridge(setNext, setPrevious func(Action)) *Bridge {
	return &Bridge{setNext: setNext, setPrevious: setPrevious, logger: noopLogger{}}
}

// SetDispatcher routes bridged actions through dispatch so callers on other
// goroutines are marshalled onto the engine's goroutine. Dispatched actions
// return nil immediately; failures are logged.
func (b *Bridge) SetDispatcher(dispatch Dispatcher) {
	b.dispatch = dispatch
}

// SetLogger sets the logger for dispatched action failures.
func (b *Bridge) SetLogger(logger Logger) {
	b.logger = orNoop(logger)
}

// Bind assigns c's actions into the slots if c differs from the bound
// controller.
func (b *Bridge) Bind(c *Controller) error {
	if b == nil {
		return fmt.Errorf("bind bridge: nil bridge: %w", ErrContextMisuse)
	}
	if err := c.usable("bind bridge"); err != nil {
		return err
	}
	if c == b.bound {
		return nil
	}
	b.bound = c
	b.assign(b.wrap("next", c.GoToNext), b.wrap("previous", c.GoToPrevious))
	return nil
}

// Unbind detaches c if it is the bound controller.
func (b *Bridge) Unbind(c *Controller) {
	if b == nil || b.bound == nil || b.bound != c {
		return
	}
	b.bound = nil
	detached := func() error {
		return fmt.Errorf("bridged action: slider unmounted: %w", ErrContextMisuse)
	}
	b.assign(detached, detached)
}

// Bound reports the currently bound controller.
func (b *Bridge) Bound() *Controller {
	if b == nil {
		return nil
	}
	return b.bound
}

func (b *Bridge) assign(next, previous Action) {
	if b.setNext != nil {
		b.setNext(next)
	}
	if b.setPrevious != nil {
		b.setPrevious(previous)
	}
}

func (b *Bridge) wrap(name string, fn Action) Action {
	if b.dispatch == nil {
		return fn
	}
	dispatch := b.dispatch
	logger := b.logger
	return func() error {
		dispatch(func() {
			if err := fn(); err != nil {
				logger.Warn("bridged action failed", "action", name, "error", err)
			}
		})
		return nil
	}
}
