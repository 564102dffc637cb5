package slider

import (
	"context"
	"errors"
	"testing"
	"time"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc, <-chan error) {
	t.Helper()
	loop := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()
	t.Cleanup(cancel)
	return loop, cancel, errc
}

func TestLoop_CallRunsOnLoop(t *testing.T) {
	loop, _, _ := startLoop(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	n := 0
	for i := 0; i < 3; i++ {
		if err := loop.Call(ctx, func() error { n++; return nil }); err != nil {
			t.Fatalf("Call error = %v", err)
		}
	}
	var got int
	_ = loop.Call(ctx, func() error { got = n; return nil })
	if got != 3 {
		t.Fatalf("n = %d, want 3", got)
	}

	want := errors.New("boom")
	if err := loop.Call(ctx, func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("Call error = %v, want %v", err, want)
	}
}

func TestLoop_PostAfterStop(t *testing.T) {
	loop, cancel, errc := startLoop(t)
	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if loop.Post(func() {}) {
		t.Fatal("Post succeeded after stop")
	}
	if err := loop.Call(context.Background(), func() error { return nil }); !errors.Is(err, ErrContextMisuse) {
		t.Fatalf("Call after stop error = %v, want ErrContextMisuse", err)
	}
}

func TestLoop_DrivesSliderWithRealTimers(t *testing.T) {
	loop, _, _ := startLoop(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan [2]int, 1)
	settings := DefaultSettings()
	settings.SlidingDuration = 5 * time.Millisecond
	settings.SlidingDelay = time.Millisecond

	var s *Slider
	err := loop.Call(ctx, func() error {
		var err error
		s, err = New(Options{
			Settings: settings,
			Slides:   FromContents("a", "b"),
			Clock:    loop.Clock(),
			Callbacks: Callbacks{
				OnAfterChange: func(a, p int) { done <- [2]int{a, p} },
			},
		})
		if err != nil {
			return err
		}
		if err := s.Mount(); err != nil {
			return err
		}
		return s.Controller().GoToNext()
	})
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}

	select {
	case got := <-done:
		if got != [2]int{2, 1} {
			t.Fatalf("OnAfterChange = %v, want [2 1]", got)
		}
	case <-ctx.Done():
		t.Fatal("OnAfterChange never fired")
	}
	_ = loop.Call(ctx, func() error { s.Close(); return nil })
}
