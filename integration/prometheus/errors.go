package prometheus

import "errors"

// ErrRegister is returned when a series cannot be registered.
var ErrRegister = errors.New("failed to register metrics")

const (
	subsystem       = "intrabus"
	labelChannel    = "channel"
	labelSubscriber = "subscriber"
)
