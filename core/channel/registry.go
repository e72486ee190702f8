package channel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/intrabus/core/blocker"
	"github.com/dmitrymomot/intrabus/core/logger"
)

const tracerName = "github.com/dmitrymomot/intrabus/core/channel"

// channel is the payload-independent view of a *blocker.Blocker[T].
type channel interface {
	ChannelName() string
	Capacity() int
	Observe()
	Reset()
	Len() (published, observed int)
	SubscriberCount() int
	Unsubscribe(id string) bool
}

// Stats describes the current state of one channel.
type Stats struct {
	Name        string
	Capacity    int
	Published   int
	Observed    int
	Subscribers int
}

// Registry owns one Blocker per channel name.
// Blockers are created lazily on first use with the declared or default capacity.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]channel

	defaultCapacity int
	declared        map[string]blocker.Attr

	logger  *slog.Logger
	metrics blocker.Metrics
	tracer  trace.Tracer
}

// NewRegistry creates an empty registry.
//
// Example:
//
//	reg := channel.NewRegistry(
//	    channel.WithDefaultCapacity(10),
//	    channel.WithChannels(blocker.NewAttr(1, "/control/command")),
//	)
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		channels:        make(map[string]channel),
		defaultCapacity: DefaultCapacity,
		declared:        make(map[string]blocker.Attr),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:         blocker.NopMetrics{},
		tracer:          otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the Blocker of the named channel, creating it if needed.
func GetOrCreate[T any](r *Registry, name string) (*blocker.Blocker[T], error) {
	if name == "" {
		return nil, ErrEmptyChannelName
	}

	r.mu.RLock()
	ch, ok := r.channels[name]
	r.mu.RUnlock()
	if ok {
		return cast[T](name, ch)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.channels[name]; ok {
		return cast[T](name, ch)
	}

	attr := r.attrFor(name)
	b, err := blocker.New[T](attr,
		blocker.WithLogger(r.logger),
		blocker.WithMetrics(r.metrics),
	)
	if err != nil {
		return nil, err
	}
	r.channels[name] = b

	r.logger.Debug("channel created",
		logger.Channel(name),
		logger.Capacity(attr.Capacity))

	return b, nil
}

// Lookup returns the Blocker of an existing channel.
func Lookup[T any](r *Registry, name string) (*blocker.Blocker[T], error) {
	if name == "" {
		return nil, ErrEmptyChannelName
	}

	r.mu.RLock()
	ch, ok := r.channels[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrChannelNotFound, name)
	}
	return cast[T](name, ch)
}

// Publish delivers msg to the named channel, creating the channel if needed.
// The publish is recorded as a producer span on the registry's tracer.
func Publish[T any](ctx context.Context, r *Registry, name string, msg *T) error {
	if msg == nil {
		return fmt.Errorf("%w on channel %q", ErrNilMessage, name)
	}

	b, err := GetOrCreate[T](r, name)
	if err != nil {
		return err
	}

	_, span := r.tracer.Start(ctx, "intrabus.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "intrabus"),
			attribute.String("messaging.destination.name", name),
			attribute.String("messaging.operation.type", "publish"),
			attribute.Int("intrabus.subscribers", b.SubscriberCount()),
		),
	)
	defer span.End()

	b.Publish(msg)
	return nil
}

// Subscribe registers cb under id on the named channel, creating the channel if needed.
func Subscribe[T any](r *Registry, name, id string, cb blocker.Callback[T]) error {
	b, err := GetOrCreate[T](r, name)
	if err != nil {
		return err
	}
	if !b.Subscribe(id, cb) {
		return fmt.Errorf("%w: %q on channel %q", blocker.ErrDuplicateSubscription, id, name)
	}
	return nil
}

// Unsubscribe removes the callback registered under id on the named channel.
func (r *Registry) Unsubscribe(name, id string) error {
	r.mu.RLock()
	ch, ok := r.channels[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrChannelNotFound, name)
	}
	if !ch.Unsubscribe(id) {
		return fmt.Errorf("%w: %q on channel %q", blocker.ErrUnknownSubscription, id, name)
	}
	return nil
}

// ObserveAll takes a snapshot of every channel. Call it once per processing cycle.
func (r *Registry) ObserveAll() {
	for _, ch := range r.snapshot() {
		ch.Observe()
	}
}

// ResetAll resets every channel. Channels stay registered with their payload type.
func (r *Registry) ResetAll() {
	for _, ch := range r.snapshot() {
		ch.Reset()
	}
}

// Remove drops the named channel. Holders of its Blocker keep a working but
// detached instance. It reports whether the channel existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.channels[name]; !ok {
		return false
	}
	delete(r.channels, name)
	r.logger.Debug("channel removed", logger.Channel(name))
	return true
}

// Channels returns the sorted names of all created channels.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Stats returns the state of every channel, sorted by name.
func (r *Registry) Stats() []Stats {
	channels := r.snapshot()
	stats := make([]Stats, 0, len(channels))
	for _, ch := range channels {
		published, observed := ch.Len()
		stats = append(stats, Stats{
			Name:        ch.ChannelName(),
			Capacity:    ch.Capacity(),
			Published:   published,
			Observed:    observed,
			Subscribers: ch.SubscriberCount(),
		})
	}
	return stats
}

// snapshot returns the channels sorted by name without holding the lock afterwards.
func (r *Registry) snapshot() []channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]channel, 0, len(r.channels))
	for _, ch := range r.channels {
		channels = append(channels, ch)
	}
	slices.SortFunc(channels, func(a, b channel) int {
		return strings.Compare(a.ChannelName(), b.ChannelName())
	})
	return channels
}

func (r *Registry) attrFor(name string) blocker.Attr {
	if attr, ok := r.declared[name]; ok {
		return attr
	}
	return blocker.NewAttr(r.defaultCapacity, name)
}

func cast[T any](name string, ch channel) (*blocker.Blocker[T], error) {
	b, ok := ch.(*blocker.Blocker[T])
	if !ok {
		var want *blocker.Blocker[T]
		return nil, fmt.Errorf("%w: channel %q holds %T, requested %T", ErrTypeMismatch, name, ch, want)
	}
	return b, nil
}
