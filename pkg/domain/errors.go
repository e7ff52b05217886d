package domain

import "errors"

// ErrCapacityExceeded is returned when a configured maximum (states, transitions) is reached.
// The attempted mutation does not take effect.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrInvalidState is returned when a state index does not address a registered state.
var ErrInvalidState = errors.New("invalid state")

// ErrInvalidName is returned when a state name is empty or longer than allowed.
var ErrInvalidName = errors.New("invalid state name")

// ErrUnbuilt is returned by execution operations before an initial state is set.
var ErrUnbuilt = errors.New("automaton has no initial state")

// ErrTraceOverflow is returned when an execution would record more trace entries than allowed.
var ErrTraceOverflow = errors.New("trace overflow")

// ErrAutomatonNotFound is returned when a named automaton is not registered with the host.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrAutomatonExists is returned when creating a named automaton that already exists.
var ErrAutomatonExists = errors.New("automaton already exists")
