package slider

import (
	"fmt"
	"time"
)

// Settings are the per-mount configuration of a slider.
type Settings struct {
	InitialSlide               int
	SlidingDuration            time.Duration
	SlidingDelay               time.Duration
	SafetyFactor               float64
	ShouldAutoplay             bool
	AutoplayDuration           time.Duration
	ShouldDisplayButtons       bool
	ShouldSlideOnArrowKeypress bool
}

// DefaultSettings returns the defaults used when an option is not configured.
func DefaultSettings() Settings {
	return Settings{
		InitialSlide:               1,
		SlidingDuration:            500 * time.Millisecond,
		SlidingDelay:               200 * time.Millisecond,
		SafetyFactor:               DefaultSafetyFactor,
		AutoplayDuration:           DefaultAutoplayDuration,
		ShouldDisplayButtons:       true,
		ShouldSlideOnArrowKeypress: true,
	}
}

// Timing returns the transition timing portion of the settings.
func (s Settings) Timing() Timing {
	return Timing{
		SlidingDuration: s.SlidingDuration,
		SlidingDelay:    s.SlidingDelay,
		SafetyFactor:    s.SafetyFactor,
	}
}

// Options configure a Slider.
type Options struct {
	Settings  Settings
	Slides    []Slide
	Callbacks Callbacks
	Clock     Clock
	Logger    Logger
	// Bridge, when set, is bound to the controller on Mount and unbound on Close.
	Bridge *Bridge
}

// Snapshot is a point-in-time view of a slider for hosts.
type Snapshot struct {
	Transition TransitionState
	Autoplay   AutoplayStatus
	Total      int
	Mounted    bool
}

// Slider wires a Registry, Controller, Autoplay and Bridge for one mount.
//
// New performs validation only; nothing is scheduled until Mount. Close
// cancels every outstanding timer, so no callback runs after teardown.
type Slider struct {
	settings  Settings
	callbacks Callbacks
	clock     Clock
	logger    Logger
	bridge    *Bridge

	registry   *Registry
	controller *Controller
	autoplay   *Autoplay

	mounted bool
	closed  bool
}

// New validates opts and registers the slides. It has no side effects.
func New(opts Options) (*Slider, error) {
	settings := opts.Settings
	if settings.InitialSlide == 0 {
		settings.InitialSlide = 1
	}

	registry := NewRegistry()
	for _, s := range opts.Slides {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	if total := registry.Size(); total > 0 && (settings.InitialSlide < 1 || settings.InitialSlide > total) {
		return nil, fmt.Errorf("initial slide %d of %d: %w", settings.InitialSlide, total, ErrInvalidSlideIndex)
	}

	return &Slider{
		settings:  settings,
		callbacks: opts.Callbacks,
		clock:     opts.Clock,
		logger:    orNoop(opts.Logger),
		bridge:    opts.Bridge,
		registry:  registry,
	}, nil
}

// FromContents numbers contents 1..N in order.
func FromContents(contents ...any) []Slide {
	slides := make([]Slide, len(contents))
	for i, c := range contents {
		slides[i] = Slide{Number: i + 1, Content: c}
	}
	return slides
}

// Mount activates the slider: freezes the registry, creates the controller,
// binds the bridge and starts autoplay when enabled.
func (s *Slider) Mount() error {
	if s == nil || s.closed {
		return fmt.Errorf("mount: %w", ErrContextMisuse)
	}
	if s.mounted {
		return nil
	}

	controller, err := NewController(s.registry, ControllerOptions{
		Timing:       s.settings.Timing(),
		InitialSlide: s.settings.InitialSlide,
		Callbacks:    s.callbacks,
		Clock:        s.clock,
		Logger:       s.logger,
	})
	if err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	autoplay, err := NewAutoplay(controller, AutoplayOptions{
		Enabled:  s.settings.ShouldAutoplay,
		Interval: s.settings.AutoplayDuration,
		Clock:    s.clock,
		Logger:   s.logger,
	})
	if err != nil {
		controller.Close()
		return fmt.Errorf("mount: %w", err)
	}

	s.registry.Freeze()
	s.controller = controller
	s.autoplay = autoplay
	s.mounted = true

	if s.bridge != nil {
		if err := s.bridge.Bind(controller); err != nil {
			return fmt.Errorf("mount: %w", err)
		}
	}
	if err := autoplay.Start(); err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	s.logger.Info("slider mounted",
		"slides", s.registry.Size(),
		"initial", controller.Active(),
		"autoplay", s.settings.ShouldAutoplay,
	)
	return nil
}

// Close tears the slider down. It is safe to call more than once.
func (s *Slider) Close() {
	if s == nil || s.closed {
		return
	}
	s.autoplay.Close()
	s.controller.Close()
	if s.bridge != nil {
		s.bridge.Unbind(s.controller)
	}
	s.registry.Thaw()
	s.mounted = false
	s.closed = true
	s.logger.Info("slider closed")
}

// Controller returns the mounted controller, or nil before Mount. Methods on
// a nil controller fail with ErrContextMisuse.
func (s *Slider) Controller() *Controller {
	if s == nil {
		return nil
	}
	return s.controller
}

// Autoplay returns the mounted scheduler, or nil before Mount.
func (s *Slider) Autoplay() *Autoplay {
	if s == nil {
		return nil
	}
	return s.autoplay
}

// Registry returns the slide registry.
func (s *Slider) Registry() *Registry { return s.registry }

// Settings returns the settings the slider was built with.
func (s *Slider) Settings() Settings { return s.settings }

// Mounted reports whether the slider is active.
func (s *Slider) Mounted() bool { return s != nil && s.mounted }

// Snapshot returns the current state for rendering.
func (s *Slider) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return Snapshot{
		Transition: s.controller.State(),
		Autoplay:   s.autoplay.Status(),
		Total:      s.registry.Size(),
		Mounted:    s.mounted,
	}
}

// ActiveSlide returns the descriptor of the active slide.
func (s *Slider) ActiveSlide() (Slide, bool) {
	if s == nil || s.controller == nil {
		return Slide{}, false
	}
	return s.registry.Get(s.controller.Active())
}
