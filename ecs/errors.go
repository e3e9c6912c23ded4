package ecs

import "github.com/rotisserie/eris"

var (
	// ErrInvalidEntity is returned when operating on an unbound entity handle.
	ErrInvalidEntity = eris.New("invalid entity")
	// ErrNotRegistered is returned when a component type has no pool in the world.
	ErrNotRegistered = eris.New("component type not registered")
	// ErrAlreadyRegistered is returned by Register for a type that already has a pool.
	ErrAlreadyRegistered = eris.New("component type already registered")
	// ErrNotFound is returned when an entity has no active component of the requested type.
	ErrNotFound = eris.New("component not found")
	// ErrOutOfBounds is returned by pool operations addressed beyond the pool length.
	ErrOutOfBounds = eris.New("slot out of bounds")
	// ErrAllocationFailed is returned when a pool or the slot table cannot grow.
	ErrAllocationFailed = eris.New("allocation failed")
)
