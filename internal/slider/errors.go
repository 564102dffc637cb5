package slider

import "errors"

// Domain errors for the slider package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, slider.ErrInvalidSlideIndex) {
//	    // the computed target was outside 1..N
//	}
var (
	// ErrInvalidSlideIndex is returned when a target slide is outside [1, total],
	// including every request made while no slides are registered.
	ErrInvalidSlideIndex = errors.New("slider: invalid slide index")

	// ErrContextMisuse is returned when an operation is invoked on a nil,
	// unmounted or closed instance. It always indicates a programming error.
	ErrContextMisuse = errors.New("slider: used outside an initialized instance")

	// ErrRegistryInconsistency is returned when slide numbering is not exactly
	// 1..N or when the registry is mutated while a slider is mounted.
	ErrRegistryInconsistency = errors.New("slider: registry inconsistency")
)
