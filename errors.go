package kmerlsh

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidP is returned when the sensitivity radius is not positive.
	ErrInvalidP = errors.New("p must be positive")
	// ErrInvalidQ is returned when the diameter bound is not positive.
	ErrInvalidQ = errors.New("q must be positive")
	// ErrNoCenters is returned for an empty center list.
	ErrNoCenters = errors.New("at least one center is required")
	// ErrNotRun is returned when output is requested before Run.
	ErrNotRun = errors.New("partition has not been run")
)

// ErrInvalidStrategy indicates an unknown conflict strategy.
type ErrInvalidStrategy struct {
	Strategy Strategy
}

func (e *ErrInvalidStrategy) Error() string {
	return fmt.Sprintf("invalid conflict strategy: %d", int(e.Strategy))
}
