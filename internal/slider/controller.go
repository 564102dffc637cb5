package slider

import (
	"fmt"
	"time"
)

// DefaultSafetyFactor stretches the completion timer past the nominal
// animation time so the host's animation has finished when OnAfterChange runs.
const DefaultSafetyFactor = 1.1

// Direction is the travel direction of a transition.
type Direction int

const (
	// DirectionNone means no transition is in flight.
	DirectionNone Direction = iota
	// DirectionForward moves towards higher slide numbers.
	DirectionForward
	// DirectionBackward moves towards lower slide numbers.
	DirectionBackward
)

// String returns a human-readable representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Callbacks are the three-phase transition notifications. Any of them may be nil.
type Callbacks struct {
	// OnBeforeChange runs synchronously before the state changes.
	OnBeforeChange func(active, next int)
	// OnChange runs SlidingDelay after the transition starts.
	OnChange func(active, previous int)
	// OnAfterChange runs when the transition completes.
	OnAfterChange func(active, previous int)
}

// Timing controls when the two transition callbacks fire.
type Timing struct {
	SlidingDuration time.Duration
	SlidingDelay    time.Duration
	// SafetyFactor multiplies SlidingDuration+SlidingDelay for the completion
	// timer. Values below 1 fall back to DefaultSafetyFactor.
	SafetyFactor float64
}

// CompletionDelay returns the delay of the completion timer.
func (t Timing) CompletionDelay() time.Duration {
	factor := t.SafetyFactor
	if factor < 1 {
		factor = DefaultSafetyFactor
	}
	return time.Duration(float64(t.SlidingDuration+t.SlidingDelay) * factor)
}

// TransitionState is a copy of the controller's state.
type TransitionState struct {
	Active        int
	Previous      int
	Transitioning bool
	Direction     Direction
}

// TransitionEvent describes a transition that has just started.
type TransitionEvent struct {
	From       int
	To         int
	Direction  Direction
	Superseded bool // an in-flight transition was canceled by this one
}

// ControllerOptions configure a Controller.
type ControllerOptions struct {
	Timing       Timing
	InitialSlide int // zero means 1
	Callbacks    Callbacks
	Clock        Clock
	Logger       Logger
}

type transitionListener struct {
	id int
	fn func(TransitionEvent)
}

// Controller owns the active slide and the transition lifecycle.
//
// Every state change goes through GoToSlideDirection (start) and the
// completion timer (finish). A request that arrives while a transition is in
// flight supersedes it: both pending timers are canceled before the new ones
// are armed, so no stale OnChange/OnAfterChange can fire.
//
// A Controller is confined to one goroutine; use a Loop or the Bubble Tea
// program to serialize triggers.
type Controller struct {
	registry  *Registry
	timing    Timing
	callbacks Callbacks
	logger    Logger

	state        TransitionState
	delayTimer   *Timer
	slidingTimer *Timer

	listeners      []transitionListener
	nextListenerID int

	inBeforeChange bool
	closed         bool
}

// NewController creates a settled controller positioned at the initial slide.
func NewController(registry *Registry, opts ControllerOptions) (*Controller, error) {
	if registry == nil {
		return nil, fmt.Errorf("new controller: nil registry: %w", ErrContextMisuse)
	}
	initial := opts.InitialSlide
	if initial == 0 {
		initial = 1
	}
	total := registry.Size()
	if total == 0 {
		initial = 0
	} else if initial < 1 || initial > total {
		return nil, fmt.Errorf("initial slide %d of %d: %w", initial, total, ErrInvalidSlideIndex)
	}

	return &Controller{
		registry:     registry,
		timing:       opts.Timing,
		callbacks:    opts.Callbacks,
		logger:       orNoop(opts.Logger),
		state:        TransitionState{Active: initial},
		delayTimer:   NewTimer(opts.Clock),
		slidingTimer: NewTimer(opts.Clock),
	}, nil
}

// State returns a copy of the current transition state.
func (c *Controller) State() TransitionState {
	if c == nil {
		return TransitionState{}
	}
	return c.state
}

// Active returns the active slide number.
func (c *Controller) Active() int { return c.State().Active }

// Total returns the number of registered slides.
func (c *Controller) Total() int {
	if c == nil {
		return 0
	}
	return c.registry.Size()
}

// NextSlide returns the slide after from, wrapping to 1 after the last.
func (c *Controller) NextSlide(from int) int {
	total := c.Total()
	if from < total {
		return from + 1
	}
	return 1
}

// PreviousSlide returns the slide before from, wrapping to the last before 1.
func (c *Controller) PreviousSlide(from int) int {
	if from > 1 {
		return from - 1
	}
	return c.Total()
}

// Next returns the slide after the active one.
func (c *Controller) Next() int { return c.NextSlide(c.Active()) }

// Previous returns the slide before the active one.
func (c *Controller) Previous() int { return c.PreviousSlide(c.Active()) }

// GoToNext starts a forward transition to the next slide.
func (c *Controller) GoToNext() error {
	if err := c.usable("go to next"); err != nil {
		return err
	}
	return c.GoToSlideDirection(c.Next(), DirectionForward)
}

// GoToPrevious starts a backward transition to the previous slide.
func (c *Controller) GoToPrevious() error {
	if err := c.usable("go to previous"); err != nil {
		return err
	}
	return c.GoToSlideDirection(c.Previous(), DirectionBackward)
}

// GoToSlide starts a transition to target, deriving the direction from the
// active slide.
func (c *Controller) GoToSlide(target int) error {
	return c.GoToSlideDirection(target, DirectionNone)
}

// GoToSlideDirection starts a transition to target.
//
// Targets outside 1..N fail with ErrInvalidSlideIndex. Requesting the active
// slide is a no-op. While a transition is in flight the new request
// supersedes it.
func (c *Controller) GoToSlideDirection(target int, dir Direction) error {
	if err := c.usable("go to slide"); err != nil {
		return err
	}
	if c.inBeforeChange {
		return fmt.Errorf("go to slide %d from OnBeforeChange: %w", target, ErrContextMisuse)
	}
	total := c.registry.Size()
	if total == 0 || target < 1 || target > total {
		return fmt.Errorf("go to slide %d of %d: %w", target, total, ErrInvalidSlideIndex)
	}
	from := c.state.Active
	if target == from {
		return nil
	}
	if dir == DirectionNone {
		dir = DirectionBackward
		if target > from {
			dir = DirectionForward
		}
	}

	superseded := c.state.Transitioning
	c.delayTimer.Cancel()
	c.slidingTimer.Cancel()

	if fn := c.callbacks.OnBeforeChange; fn != nil {
		c.inBeforeChange = true
		fn(from, target)
		c.inBeforeChange = false
		if c.closed {
			return fmt.Errorf("go to slide %d: closed during OnBeforeChange: %w", target, ErrContextMisuse)
		}
	}

	c.state = TransitionState{
		Active:        target,
		Previous:      from,
		Transitioning: true,
		Direction:     dir,
	}
	c.delayTimer.Start(c.timing.SlidingDelay, c.midTransition)
	c.slidingTimer.Start(c.timing.CompletionDelay(), c.finishTransition)

	c.logger.Debug("transition started",
		"from", from,
		"to", target,
		"direction", dir.String(),
		"superseded", superseded,
	)

	c.notify(TransitionEvent{From: from, To: target, Direction: dir, Superseded: superseded})
	return nil
}

// AddTransitionListener registers fn to run after every transition start.
// Returns an unsubscribe function.
func (c *Controller) AddTransitionListener(fn func(TransitionEvent)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners = append(c.listeners, transitionListener{id: id, fn: fn})
	return func() {
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Close cancels pending timers and drops listeners. Later calls fail with
// ErrContextMisuse.
func (c *Controller) Close() {
	if c == nil || c.closed {
		return
	}
	c.delayTimer.Cancel()
	c.slidingTimer.Cancel()
	c.listeners = nil
	c.closed = true
}

func (c *Controller) usable(op string) error {
	if c == nil {
		return fmt.Errorf("%s: nil controller: %w", op, ErrContextMisuse)
	}
	if c.closed {
		return fmt.Errorf("%s: controller closed: %w", op, ErrContextMisuse)
	}
	return nil
}

func (c *Controller) midTransition() {
	if fn := c.callbacks.OnChange; fn != nil {
		fn(c.state.Active, c.state.Previous)
	}
}

// finishTransition settles the transition. When both timers come due together
// the completion may be delivered first; the mid-transition callback then runs
// here so OnChange always precedes OnAfterChange.
func (c *Controller) finishTransition() {
	if c.delayTimer.State() == TimerRunning {
		c.delayTimer.Cancel()
		c.midTransition()
		// OnChange closed the controller or started another transition.
		if c.closed || c.slidingTimer.State() != TimerIdle {
			return
		}
	}
	c.state.Transitioning = false
	c.state.Direction = DirectionNone
	c.logger.Debug("transition finished", "active", c.state.Active, "previous", c.state.Previous)
	if fn := c.callbacks.OnAfterChange; fn != nil {
		fn(c.state.Active, c.state.Previous)
	}
}

func (c *Controller) notify(ev TransitionEvent) {
	for _, l := range append([]transitionListener(nil), c.listeners...) {
		l.fn(ev)
	}
}
