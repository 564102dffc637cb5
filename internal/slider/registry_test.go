package slider

import (
	"errors"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	for _, s := range FromContents("a", "b", "c") {
		if err := r.Register(s); err != nil {
			t.Fatalf("Register(%d) error = %v", s.Number, err)
		}
	}
	if r.Size() != 3 {
		t.Fatalf("Size = %d, want 3", r.Size())
	}
	s, ok := r.Get(2)
	if !ok || s.Content != "b" {
		t.Fatalf("Get(2) = %#v, %v, want content b", s, ok)
	}
	if _, ok := r.Get(4); ok {
		t.Fatal("Get(4) found a slide, want not found")
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate error = %v", err)
	}
}

func TestRegistry_KeepsInsertionOrder(t *testing.T) {
	r := NewRegistry()
	for _, n := range []int{2, 1, 3} {
		if err := r.Register(Slide{Number: n}); err != nil {
			t.Fatalf("Register(%d) error = %v", n, err)
		}
	}
	got := r.Slides()
	want := []int{2, 1, 3}
	for i, s := range got {
		if s.Number != want[i] {
			t.Fatalf("Slides()[%d].Number = %d, want %d", i, s.Number, want[i])
		}
	}
}

func TestRegistry_RejectsInvalidNumbers(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Slide{Number: 0}); !errors.Is(err, ErrInvalidSlideIndex) {
		t.Fatalf("Register(0) error = %v, want ErrInvalidSlideIndex", err)
	}
	if err := r.Register(Slide{Number: 1}); err != nil {
		t.Fatalf("Register(1) error = %v", err)
	}
	if err := r.Register(Slide{Number: 1}); !errors.Is(err, ErrRegistryInconsistency) {
		t.Fatalf("duplicate Register error = %v, want ErrRegistryInconsistency", err)
	}
}

func TestRegistry_ValidateDetectsGaps(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Slide{Number: 1})
	_ = r.Register(Slide{Number: 3})
	if err := r.Validate(); !errors.Is(err, ErrRegistryInconsistency) {
		t.Fatalf("Validate error = %v, want ErrRegistryInconsistency", err)
	}
}

func TestRegistry_UnregisterDoesNotRenumber(t *testing.T) {
	r := NewRegistry()
	for _, s := range FromContents("a", "b", "c") {
		_ = r.Register(s)
	}
	if err := r.Unregister(2); err != nil {
		t.Fatalf("Unregister error = %v", err)
	}
	if _, ok := r.Get(3); !ok {
		t.Fatal("slide 3 renumbered or removed")
	}
	if err := r.Unregister(2); !errors.Is(err, ErrInvalidSlideIndex) {
		t.Fatalf("second Unregister error = %v, want ErrInvalidSlideIndex", err)
	}
	if len(r.Slides()) != 2 {
		t.Fatalf("Slides len = %d, want 2", len(r.Slides()))
	}
}

func TestRegistry_FrozenRejectsMutation(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Slide{Number: 1})
	r.Freeze()

	if err := r.Register(Slide{Number: 2}); !errors.Is(err, ErrRegistryInconsistency) {
		t.Fatalf("Register while frozen error = %v, want ErrRegistryInconsistency", err)
	}
	if err := r.Unregister(1); !errors.Is(err, ErrRegistryInconsistency) {
		t.Fatalf("Unregister while frozen error = %v, want ErrRegistryInconsistency", err)
	}

	r.Thaw()
	if err := r.Unregister(1); err != nil {
		t.Fatalf("Unregister after Thaw error = %v", err)
	}
}
