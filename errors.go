package cadence

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cadence package.
// Use errors.Is to check: errors.Is(err, cadence.ErrInvalidInput)
var (
	// ErrInvalidInput is the root of every input validation failure.
	ErrInvalidInput = errors.New("cadence: invalid input")

	ErrInvalidRating   = fmt.Errorf("%w: rating", ErrInvalidInput)
	ErrInvalidState    = fmt.Errorf("%w: state", ErrInvalidInput)
	ErrClockRegression = fmt.Errorf("%w: review time before last review", ErrInvalidInput)
	ErrInvalidConfig   = fmt.Errorf("%w: configuration", ErrInvalidInput)
	ErrCardIDMismatch  = fmt.Errorf("%w: card ID mismatch in review log", ErrInvalidInput)

	// ErrNumericDegeneracy reports a non-finite stability or difficulty that
	// survived clamping. It indicates broken weights, not bad user input.
	ErrNumericDegeneracy = errors.New("cadence: numeric degeneracy")
)
