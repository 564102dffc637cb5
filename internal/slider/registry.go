package slider

import (
	"fmt"
	"slices"
)

// Slide is one addressable panel in the cycling sequence.
type Slide struct {
	// Number is the 1-based position of the slide. It is the slide's identity.
	Number int
	// Content is opaque to the engine; the host renders it.
	Content any
}

// Registry holds the ordered slide descriptors for one slider.
//
// Numbering is assigned by the caller and is never rewritten. Once frozen
// (while a Slider is mounted) the registry refuses mutation so the slide
// count stays stable for the controller.
type Registry struct {
	slides map[int]Slide
	order  []int
	frozen bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{slides: make(map[int]Slide)}
}

// Register adds a slide. Numbers must be positive and unique.
func (r *Registry) Register(s Slide) error {
	if r.frozen {
		return fmt.Errorf("register slide %d while mounted: %w", s.Number, ErrRegistryInconsistency)
	}
	if s.Number < 1 {
		return fmt.Errorf("register slide %d: %w", s.Number, ErrInvalidSlideIndex)
	}
	if _, exists := r.slides[s.Number]; exists {
		return fmt.Errorf("register slide %d: duplicate number: %w", s.Number, ErrRegistryInconsistency)
	}
	r.slides[s.Number] = s
	r.order = append(r.order, s.Number)
	return nil
}

// Unregister removes the slide with the given number.
func (r *Registry) Unregister(number int) error {
	if r.frozen {
		return fmt.Errorf("unregister slide %d while mounted: %w", number, ErrRegistryInconsistency)
	}
	if _, ok := r.slides[number]; !ok {
		return fmt.Errorf("unregister slide %d: %w", number, ErrInvalidSlideIndex)
	}
	delete(r.slides, number)
	r.order = slices.DeleteFunc(r.order, func(n int) bool { return n == number })
	return nil
}

// Get returns the slide with the given number.
func (r *Registry) Get(number int) (Slide, bool) {
	s, ok := r.slides[number]
	return s, ok
}

// Size returns the number of registered slides.
func (r *Registry) Size() int {
	return len(r.slides)
}

// Slides returns the slides in insertion order.
func (r *Registry) Slides() []Slide {
	out := make([]Slide, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.slides[n])
	}
	return out
}

// Validate reports ErrRegistryInconsistency unless the numbers are exactly 1..N.
func (r *Registry) Validate() error {
	for n := 1; n <= len(r.slides); n++ {
		if _, ok := r.slides[n]; !ok {
			return fmt.Errorf("slide %d missing from 1..%d: %w", n, len(r.slides), ErrRegistryInconsistency)
		}
	}
	return nil
}

// Freeze rejects further mutation until Thaw.
func (r *Registry) Freeze() { r.frozen = true }

// Thaw allows mutation again. Called on teardown.
func (r *Registry) Thaw() { r.frozen = false }

// Frozen reports whether the registry is frozen.
func (r *Registry) Frozen() bool { return r.frozen }
