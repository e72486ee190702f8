package blocker

import (
	"io"
	"log/slog"
)

type options struct {
	logger  *slog.Logger
	metrics Metrics
}

func defaultOptions() options {
	return options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: NopMetrics{},
	}
}

// Option configures a Blocker.
type Option func(*options)

// WithLogger configures structured logging for the Blocker.
// Callback panics are logged at error level, ignored input at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink. Defaults to NopMetrics.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
