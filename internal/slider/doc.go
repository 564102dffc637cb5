// Package slider implements the slide-transition and autoplay scheduling
// engine behind Carousel.
//
// # Overview
//
// The engine owns which slide is active, when a transition starts and
// finishes, and when autoplay advances. It never renders anything: hosts read
// a Snapshot and call the transition API from their own input handling.
//
// # Components
//
//   - Registry: ordered slide descriptors numbered 1..N
//   - Timer: cancelable, pausable one-shot delay on an injectable Clock
//   - Controller: active/previous slide, transition lifecycle, wraparound
//   - Autoplay: advances the controller every interval unless paused
//   - Bridge: hands GoToNext/GoToPrevious to code outside the host
//   - Slider: wires the above for one mount (New → Mount → Close)
//   - Loop: single-goroutine executor for triggers and timer callbacks
//
// # Transition Lifecycle
//
//	GoToSlide(t)
//	  │
//	  ├─> cancel pending timers (supersession)
//	  ├─> OnBeforeChange(active, t)        synchronous, before mutation
//	  ├─> active=t, previous=old, transitioning=true
//	  ├─> after SlidingDelay:              OnChange(active, previous)
//	  └─> after (SlidingDuration+SlidingDelay)*SafetyFactor:
//	        transitioning=false, OnAfterChange(active, previous)
//
// # Concurrency Model
//
// Engine types are confined to one goroutine and carry no locks. Timer
// callbacks are delivered through a Dispatcher (Loop.Post, or a Bubble Tea
// program's Send) so they run on the same goroutine as every public call.
// Each Timer arming carries a generation number; a callback that was already
// queued when its timer was canceled is dropped on arrival.
//
// # Error Handling
//
//   - ErrInvalidSlideIndex: target outside 1..N, never clamped
//   - ErrContextMisuse: nil, unmounted or closed instance
//   - ErrRegistryInconsistency: numbering gaps or mutation while mounted
//
// All are returned synchronously and wrapped with context; check them with
// errors.Is.
//
// # Usage Example
//
//	loop := slider.NewLoop(0)
//	s, err := slider.New(slider.Options{
//		Settings: slider.DefaultSettings(),
//		Slides:   slider.FromContents("one", "two", "three"),
//		Clock:    loop.Clock(),
//		Callbacks: slider.Callbacks{
//			OnAfterChange: func(active, previous int) { log.Println(active) },
//		},
//	})
//	if err != nil {
//		return err
//	}
//	loop.Post(func() { _ = s.Mount() })
//	go loop.Run(ctx)
package slider
