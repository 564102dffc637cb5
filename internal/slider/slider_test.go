package slider

import (
	"errors"
	"testing"
	"time"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.SlidingDuration = 100 * time.Millisecond
	s.SlidingDelay = 50 * time.Millisecond
	s.AutoplayDuration = time.Second
	return s
}

func TestNew_ValidatesSlides(t *testing.T) {
	tests := []struct {
		name    string
		slides  []Slide
		initial int
		wantErr error
	}{
		{name: "ok", slides: FromContents("a", "b", "c"), initial: 2},
		{name: "empty", slides: nil},
		{name: "gap", slides: []Slide{{Number: 1}, {Number: 3}}, wantErr: ErrRegistryInconsistency},
		{name: "duplicate", slides: []Slide{{Number: 1}, {Number: 1}}, wantErr: ErrRegistryInconsistency},
		{name: "zero number", slides: []Slide{{Number: 0}}, wantErr: ErrInvalidSlideIndex},
		{name: "initial out of range", slides: FromContents("a", "b"), initial: 3, wantErr: ErrInvalidSlideIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := testSettings()
			settings.InitialSlide = tt.initial
			_, err := New(Options{Settings: settings, Slides: tt.slides, Clock: newFakeClock()})
			if tt.wantErr == nil && err != nil {
				t.Fatalf("New error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("New error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlider_NothingScheduledBeforeMount(t *testing.T) {
	clock := newFakeClock()
	settings := testSettings()
	settings.ShouldAutoplay = true
	s, err := New(Options{Settings: settings, Slides: FromContents("a", "b"), Clock: clock})
	if err != nil {
		t.Fatal(err)
	}

	if clock.Pending() != 0 {
		t.Fatalf("Pending = %d before Mount, want 0", clock.Pending())
	}
	if s.Controller() != nil || s.Autoplay() != nil || s.Mounted() {
		t.Fatal("controller or autoplay exists before Mount")
	}
	if err := s.Controller().GoToNext(); !errors.Is(err, ErrContextMisuse) {
		t.Fatalf("GoToNext before Mount error = %v, want ErrContextMisuse", err)
	}
	if snap := s.Snapshot(); snap.Mounted || snap.Total != 2 || snap.Transition.Active != 0 {
		t.Fatalf("Snapshot before Mount = %+v", snap)
	}
}

func TestSlider_MountStartsAutoplay(t *testing.T) {
	clock := newFakeClock()
	settings := testSettings()
	settings.ShouldAutoplay = true

	var changes [][2]int
	s, err := New(Options{
		Settings: settings,
		Slides:   FromContents("a", "b", "c"),
		Clock:    clock,
		Callbacks: Callbacks{
			OnAfterChange: func(a, p int) { changes = append(changes, [2]int{a, p}) },
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Mount(); err != nil {
		t.Fatalf("Mount error = %v", err)
	}
	if !s.Registry().Frozen() {
		t.Fatal("registry not frozen after Mount")
	}
	if err := s.Registry().Register(Slide{Number: 4}); !errors.Is(err, ErrRegistryInconsistency) {
		t.Fatalf("Register after Mount error = %v, want ErrRegistryInconsistency", err)
	}

	clock.Advance(2500 * time.Millisecond)
	if s.Controller().Active() != 3 {
		t.Fatalf("Active = %d, want 3", s.Controller().Active())
	}
	if len(changes) != 2 || changes[0] != [2]int{2, 1} || changes[1] != [2]int{3, 2} {
		t.Fatalf("OnAfterChange calls = %v", changes)
	}
	slide, ok := s.ActiveSlide()
	if !ok || slide.Content != "c" {
		t.Fatalf("ActiveSlide = %+v %v, want c", slide, ok)
	}
}

func TestSlider_CloseCancelsEverything(t *testing.T) {
	clock := newFakeClock()
	settings := testSettings()
	settings.ShouldAutoplay = true

	calls := 0
	var next, previous Action
	bridge := NewBridge(func(a Action) { next = a }, func(a Action) { previous = a })
	s, err := New(Options{
		Settings: settings,
		Slides:   FromContents("a", "b", "c"),
		Clock:    clock,
		Bridge:   bridge,
		Callbacks: Callbacks{
			OnChange:      func(int, int) { calls++ },
			OnAfterChange: func(int, int) { calls++ },
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Mount()
	if err := next(); err != nil {
		t.Fatalf("bridged next error = %v", err)
	}

	s.Close()
	s.Close()
	if clock.Pending() != 0 {
		t.Fatalf("Pending = %d after Close, want 0", clock.Pending())
	}
	clock.Advance(10 * time.Second)
	if calls != 0 {
		t.Fatalf("%d callbacks ran after Close", calls)
	}
	if err := previous(); !errors.Is(err, ErrContextMisuse) {
		t.Fatalf("bridged previous after Close error = %v, want ErrContextMisuse", err)
	}
	if s.Registry().Frozen() {
		t.Fatal("registry still frozen after Close")
	}
	if err := s.Mount(); !errors.Is(err, ErrContextMisuse) {
		t.Fatalf("Mount after Close error = %v, want ErrContextMisuse", err)
	}
}

func TestSlider_MountIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	settings := testSettings()
	settings.ShouldAutoplay = true
	s, _ := New(Options{Settings: settings, Slides: FromContents("a", "b"), Clock: clock})

	_ = s.Mount()
	c := s.Controller()
	_ = s.Mount()
	if s.Controller() != c {
		t.Fatal("second Mount replaced the controller")
	}
	if clock.Pending() != 1 {
		t.Fatalf("Pending = %d, want one autoplay tick", clock.Pending())
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.InitialSlide != 1 || s.SlidingDuration != 500*time.Millisecond || s.SlidingDelay != 200*time.Millisecond {
		t.Fatalf("DefaultSettings timing = %+v", s)
	}
	if s.ShouldAutoplay || s.AutoplayDuration != 5*time.Second {
		t.Fatalf("DefaultSettings autoplay = %+v", s)
	}
	if !s.ShouldDisplayButtons || !s.ShouldSlideOnArrowKeypress {
		t.Fatalf("DefaultSettings display = %+v", s)
	}
	if got := s.Timing().CompletionDelay(); got != 770*time.Millisecond {
		t.Fatalf("CompletionDelay = %v, want 770ms", got)
	}
}
