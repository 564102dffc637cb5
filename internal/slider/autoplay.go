package slider

import (
	"fmt"
	"time"
)

// DefaultAutoplayDuration is the interval between automatic advances.
const DefaultAutoplayDuration = 5 * time.Second

// AutoplayStatus is the observable autoplay state. It is derived on demand
// from the tick timer and the user-pause flag and never stored.
type AutoplayStatus struct {
	Enabled      bool
	PausedByUser bool
	State        TimerState
}

// ShowsPlay reports whether a play/pause control should offer "play".
func (s AutoplayStatus) ShowsPlay() bool {
	return s.PausedByUser && (s.State == TimerIdle || s.State == TimerPaused)
}

// AutoplayOptions configure an Autoplay scheduler.
type AutoplayOptions struct {
	Enabled  bool
	Interval time.Duration // zero uses DefaultAutoplayDuration
	Clock    Clock
	Logger   Logger
}

// Autoplay advances the controller on a fixed interval.
//
// Each tick is armed only after the previous tick's GoToNext has returned,
// so the cadence is "interval after the last advance" rather than a fixed
// rate. A transition started by anything other than the scheduler's own tick
// restarts a running countdown.
type Autoplay struct {
	controller *Controller
	interval   time.Duration
	enabled    bool
	logger     Logger

	pausedByUser bool
	halted       bool
	tick         *Timer
	advancing    bool

	removeListener func()
	closed         bool
}

// NewAutoplay creates an idle scheduler driving controller.
func NewAutoplay(controller *Controller, opts AutoplayOptions) (*Autoplay, error) {
	if err := controller.usable("new autoplay"); err != nil {
		return nil, err
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultAutoplayDuration
	}
	a := &Autoplay{
		controller: controller,
		interval:   interval,
		enabled:    opts.Enabled,
		logger:     orNoop(opts.Logger),
		tick:       NewTimer(opts.Clock),
	}
	a.removeListener = controller.AddTransitionListener(a.onTransition)
	return a, nil
}

// Start arms the first tick. It is a no-op when autoplay is disabled, already
// running, or paused by the user.
func (a *Autoplay) Start() error {
	if err := a.usable("start autoplay"); err != nil {
		return err
	}
	if !a.enabled || a.pausedByUser || a.tick.State() == TimerRunning {
		return nil
	}
	a.halted = false
	a.arm()
	a.logger.Debug("autoplay started", "interval", a.interval)
	return nil
}

// Pause stops the pending tick and records whether the user asked for it.
func (a *Autoplay) Pause(byUser bool) error {
	if err := a.usable("pause autoplay"); err != nil {
		return err
	}
	if !a.enabled {
		return nil
	}
	a.tick.Pause()
	a.halted = true
	a.pausedByUser = byUser
	a.logger.Debug("autoplay paused", "by_user", byUser)
	return nil
}

// Resume arms a fresh full-interval tick, but only after a user pause.
func (a *Autoplay) Resume() error {
	if err := a.usable("resume autoplay"); err != nil {
		return err
	}
	if !a.enabled || !a.pausedByUser {
		return nil
	}
	a.pausedByUser = false
	a.halted = false
	a.arm()
	a.logger.Debug("autoplay resumed")
	return nil
}

// Toggle resumes after a user pause and pauses otherwise.
func (a *Autoplay) Toggle() error {
	if err := a.usable("toggle autoplay"); err != nil {
		return err
	}
	if !a.enabled {
		return nil
	}
	if a.pausedByUser {
		return a.Resume()
	}
	return a.Pause(true)
}

// Status returns the derived autoplay state.
func (a *Autoplay) Status() AutoplayStatus {
	if a == nil {
		return AutoplayStatus{}
	}
	return AutoplayStatus{
		Enabled:      a.enabled,
		PausedByUser: a.pausedByUser,
		State:        a.tick.State(),
	}
}

// Interval returns the tick interval.
func (a *Autoplay) Interval() time.Duration { return a.interval }

// Close cancels the pending tick and detaches from the controller.
func (a *Autoplay) Close() {
	if a == nil || a.closed {
		return
	}
	a.tick.Cancel()
	if a.removeListener != nil {
		a.removeListener()
	}
	a.closed = true
}

func (a *Autoplay) arm() {
	a.tick.Start(a.interval, a.onTick)
}

func (a *Autoplay) onTick() {
	a.advancing = true
	err := a.controller.GoToNext()
	a.advancing = false
	if err != nil {
		a.logger.Warn("autoplay advance failed", "error", err)
	}
	if a.closed || a.halted || a.tick.State() != TimerIdle {
		return
	}
	a.arm()
}

func (a *Autoplay) onTransition(TransitionEvent) {
	if a.advancing || a.tick.State() != TimerRunning {
		return
	}
	a.arm()
}

func (a *Autoplay) usable(op string) error {
	if a == nil {
		return fmt.Errorf("%s: nil autoplay: %w", op, ErrContextMisuse)
	}
	if a.closed {
		return fmt.Errorf("%s: autoplay closed: %w", op, ErrContextMisuse)
	}
	return nil
}
