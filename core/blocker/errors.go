package blocker

import "errors"

var (
	// ErrEmptyBuffer is returned when reading the latest or oldest entry of an empty history.
	ErrEmptyBuffer = errors.New("blocker buffer is empty")

	// ErrInvalidCapacity is returned when a non-positive capacity is supplied.
	ErrInvalidCapacity = errors.New("blocker capacity must be positive")

	// ErrDuplicateSubscription is returned when a subscriber id is already registered.
	// Blocker.Subscribe reports it as false; wrapping layers surface it as an error.
	ErrDuplicateSubscription = errors.New("subscriber already registered")

	// ErrUnknownSubscription is returned when unsubscribing an id that is not registered.
	ErrUnknownSubscription = errors.New("subscriber not registered")
)
