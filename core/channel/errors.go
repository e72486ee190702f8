package channel

import "errors"

var (
	// ErrEmptyChannelName is returned when a channel name is empty.
	ErrEmptyChannelName = errors.New("channel name is empty")

	// ErrChannelNotFound is returned when looking up a channel that was never created.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrTypeMismatch is returned when a channel is accessed with a payload type
	// other than the one it was created with.
	ErrTypeMismatch = errors.New("channel payload type mismatch")

	// ErrDuplicateChannel is returned when a channel table declares a name twice.
	ErrDuplicateChannel = errors.New("channel declared more than once")

	// ErrNilMessage is returned when publishing a nil message through the registry.
	ErrNilMessage = errors.New("nil message")

	// ErrReaderClosed is returned by reads on a closed Reader.
	ErrReaderClosed = errors.New("reader is closed")
)
