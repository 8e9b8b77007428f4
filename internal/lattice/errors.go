package lattice

import "errors"

// Domain errors for system mutations. All are non-fatal: the rejected
// operation is a no-op and the system stays steppable.
var (
	// ErrMassCapacity indicates the mass store is full.
	ErrMassCapacity = errors.New("lattice: mass store at capacity")

	// ErrSpringCapacity indicates the spring store is full.
	ErrSpringCapacity = errors.New("lattice: spring store at capacity")

	// ErrForceCapacity indicates a mass's force accumulator is full and the
	// appended force was dropped.
	ErrForceCapacity = errors.New("lattice: force accumulator at capacity")

	// ErrMassIndex indicates a spring endpoint index outside the mass store.
	ErrMassIndex = errors.New("lattice: mass index out of range")

	// ErrSpringEndpoints indicates a spring whose endpoints are the same mass.
	ErrSpringEndpoints = errors.New("lattice: spring endpoints must be distinct")

	// ErrGridSize indicates non-positive grid dimensions.
	ErrGridSize = errors.New("lattice: grid dimensions must be positive")
)
