package channel

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/intrabus/core/blocker"
)

// DefaultCapacity is the history bound of channels that were not declared.
const DefaultCapacity = 10

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDefaultCapacity sets the capacity used for undeclared channels.
// Non-positive values are ignored.
func WithDefaultCapacity(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.defaultCapacity = n
		}
	}
}

// WithChannels declares per-channel capacities. Entries with an empty name or a
// non-positive capacity are ignored; later entries override earlier ones.
func WithChannels(attrs ...blocker.Attr) RegistryOption {
	return func(r *Registry) {
		for _, a := range attrs {
			if a.ChannelName == "" || a.Validate() != nil {
				continue
			}
			r.declared[a.ChannelName] = a
		}
	}
}

// WithRegistryLogger sets the logger used by the registry and the Blockers it creates.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithBlockerMetrics sets the metrics sink passed to every Blocker the registry creates.
func WithBlockerMetrics(m blocker.Metrics) RegistryOption {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithTracer sets the tracer used for publish spans. Defaults to the global provider.
func WithTracer(tracer trace.Tracer) RegistryOption {
	return func(r *Registry) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}
