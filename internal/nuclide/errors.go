package nuclide

import "errors"

// Domain errors for transport model operations.
var (
	// ErrRangeViolation indicates a model parameter outside its legal
	// range. The previously stored value is retained.
	ErrRangeViolation = errors.New("nuclide: parameter out of valid range")

	// ErrInsufficientMass indicates an extraction request against a
	// component that holds none of the requested composition.
	ErrInsufficientMass = errors.New("nuclide: no mass of requested composition contained")

	// ErrZeroElapsed indicates the closed-form solution was evaluated at
	// zero elapsed time, where its erfc argument is undefined.
	ErrZeroElapsed = errors.New("nuclide: closed-form solution undefined at zero elapsed time")

	// ErrZeroVolume indicates a concentration conversion against a
	// component with no pore volume.
	ErrZeroVolume = errors.New("nuclide: pore volume is zero")

	// ErrUnknownModel indicates an unrecognized transport model name.
	ErrUnknownModel = errors.New("nuclide: unknown transport model")
)
