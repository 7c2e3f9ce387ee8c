package finance

import "errors"

var (
	// ErrInvalidPayment is returned when a solver needs a non-zero payment.
	ErrInvalidPayment = errors.New("payment must be non-zero")
	// ErrInvalidPeriods is returned for a non-positive period count.
	ErrInvalidPeriods = errors.New("number of periods must be positive")
	// ErrNoSolution is returned when the time-value equation has no real solution
	// for the given inputs.
	ErrNoSolution = errors.New("no solution for the given cash flows")
)
