package blocker

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/intrabus/core/logger"
)

// Callback receives every message published after its registration.
// The handle is shared: callbacks must treat the payload as read-only.
type Callback[T any] func(msg *T)

type subscription[T any] struct {
	id string
	cb Callback[T]
}

// Blocker buffers the messages of a single channel.
//
// Producers call Publish; every registered callback is invoked synchronously on the
// producer's goroutine. Consumers call Observe to take a stable snapshot of the
// published history and then read it without contention from later publishes.
//
// Publishes are serialized: the append order equals the callback dispatch order across
// producers. A slow callback therefore stalls its own Publish and every producer queued
// behind it. Callbacks may call any method of their Blocker except Publish and
// PublishValue, which would deadlock.
type Blocker[T any] struct {
	// publishMu serializes append+dispatch. mu guards all state below.
	publishMu sync.Mutex
	mu        sync.Mutex

	capacity    int
	channelName string
	published   []*T
	observed    []*T
	subscribers []subscription[T]

	logger  *slog.Logger
	metrics Metrics
}

// New creates a Blocker with empty histories and no subscribers.
//
// Example:
//
//	b, err := blocker.New[Pose](blocker.NewAttr(10, "/localization/pose"))
//	if err != nil {
//	    return err
//	}
//	b.Publish(&Pose{X: 1})
//	b.Observe()
//	latest, _ := b.GetLatestObservedPtr()
func New[T any](attr Attr, opts ...Option) (*Blocker[T], error) {
	if err := attr.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Blocker[T]{
		capacity:    attr.Capacity,
		channelName: attr.ChannelName,
		logger:      o.logger,
		metrics:     o.metrics,
	}, nil
}

// MustNew is like New but panics on invalid attributes.
func MustNew[T any](attr Attr, opts ...Option) *Blocker[T] {
	b, err := New[T](attr, opts...)
	if err != nil {
		panic(fmt.Errorf("blocker: %w", err))
	}
	return b
}

// ChannelName returns the channel identity the Blocker was built with.
func (b *Blocker[T]) ChannelName() string {
	return b.channelName
}

// Capacity returns the current history bound.
func (b *Blocker[T]) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity
}

// SetCapacity changes the history bound. Both histories are truncated oldest-first
// when they exceed the new bound. Non-positive values are rejected and leave the
// Blocker unchanged.
func (b *Blocker[T]) SetCapacity(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d for channel %q", ErrInvalidCapacity, n, b.channelName)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.capacity = n
	var evicted int
	b.published, evicted = truncate(b.published, n)
	b.observed, _ = truncate(b.observed, n)
	if evicted > 0 {
		b.metrics.Evicted(b.channelName, evicted)
	}
	return nil
}

// Publish appends msg to the published history, evicts the oldest entries beyond
// capacity and delivers msg to every subscriber in registration order.
// A nil handle is ignored.
func (b *Blocker[T]) Publish(msg *T) {
	if msg == nil {
		b.logger.Warn("nil message ignored", logger.Channel(b.channelName))
		return
	}

	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	b.mu.Lock()
	b.published = append(b.published, msg)
	var evicted int
	b.published, evicted = truncate(b.published, b.capacity)
	subs := slices.Clone(b.subscribers)
	b.mu.Unlock()

	b.metrics.Published(b.channelName)
	if evicted > 0 {
		b.metrics.Evicted(b.channelName, evicted)
	}

	for _, s := range subs {
		b.dispatch(s, msg)
	}
}

// PublishValue copies msg into a new handle and publishes it.
func (b *Blocker[T]) PublishValue(msg T) {
	b.Publish(&msg)
}

// dispatch runs one callback, recovering from panics so that the remaining
// subscribers still receive the message.
func (b *Blocker[T]) dispatch(s subscription[T], msg *T) {
	defer func() {
		if r := recover(); r != nil {
			b.metrics.CallbackFailed(b.channelName, s.id)
			b.logger.Error("subscriber callback panicked",
				logger.Channel(b.channelName),
				logger.Subscriber(s.id),
				logger.Panic(r),
				logger.Stack())
		}
	}()
	s.cb(msg)
}

// Observe replaces the observed history with the current published history.
// Only handles are copied; the published history is left intact.
func (b *Blocker[T]) Observe() {
	b.mu.Lock()
	b.observed = slices.Clone(b.published)
	size := len(b.observed)
	b.mu.Unlock()

	b.metrics.Observed(b.channelName, size)
}

// IsPublishedEmpty reports whether the published history has no entries.
func (b *Blocker[T]) IsPublishedEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published) == 0
}

// IsObservedEmpty reports whether the observed history has no entries.
func (b *Blocker[T]) IsObservedEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.observed) == 0
}

// GetLatestObserved returns a copy of the newest observed message.
func (b *Blocker[T]) GetLatestObserved() (T, error) {
	msg, err := b.GetLatestObservedPtr()
	if err != nil {
		var zero T
		return zero, err
	}
	return *msg, nil
}

// GetLatestObservedPtr returns the handle of the newest observed message.
func (b *Blocker[T]) GetLatestObservedPtr() (*T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return last(b.observed)
}

// GetOldestObservedPtr returns the handle of the oldest observed message.
func (b *Blocker[T]) GetOldestObservedPtr() (*T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.observed) == 0 {
		return nil, ErrEmptyBuffer
	}
	return b.observed[0], nil
}

// GetLatestPublishedPtr returns the handle of the newest published message,
// regardless of whether Observe has run since.
func (b *Blocker[T]) GetLatestPublishedPtr() (*T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return last(b.published)
}

// Observed returns the observed history, oldest first.
// The returned slice is a copy; the handles are shared.
func (b *Blocker[T]) Observed() []*T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.observed)
}

// Published returns the published history, oldest first.
func (b *Blocker[T]) Published() []*T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.published)
}

// Len returns the sizes of the published and observed histories.
func (b *Blocker[T]) Len() (published, observed int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published), len(b.observed)
}

// ClearPublished empties the published history.
func (b *Blocker[T]) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

// ClearObserved empties the observed history.
func (b *Blocker[T]) ClearObserved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observed = nil
}

// Subscribe registers cb under id. It returns false without changing anything
// if id is already registered or cb is nil.
func (b *Blocker[T]) Subscribe(id string, cb Callback[T]) bool {
	if cb == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.indexOf(id) >= 0 {
		return false
	}
	b.subscribers = append(b.subscribers, subscription[T]{id: id, cb: cb})
	return true
}

// Unsubscribe removes the callback registered under id.
// It returns false if id is not registered.
//
// Publishes that start after Unsubscribe returns never reach the callback. A Publish
// already dispatching may still invoke it once, since dispatch runs on a snapshot of
// the subscribers taken before the callbacks are called.
func (b *Blocker[T]) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	b.subscribers = slices.Delete(b.subscribers, i, i+1)
	return true
}

// HasSubscriber reports whether id is registered.
func (b *Blocker[T]) HasSubscriber(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.indexOf(id) >= 0
}

// SubscriberCount returns the number of registered callbacks.
func (b *Blocker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Reset clears both histories and every subscription. Capacity and channel name
// are kept, and previously used subscriber ids may be registered again.
func (b *Blocker[T]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
	b.observed = nil
	b.subscribers = nil
}

func (b *Blocker[T]) indexOf(id string) int {
	return slices.IndexFunc(b.subscribers, func(s subscription[T]) bool {
		return s.id == id
	})
}

// truncate drops the oldest entries of history until it fits in n.
// The dropped slots are zeroed so their handles can be collected, and the window
// is resliced instead of shifted. append reallocates once the backing array is
// exhausted, which keeps eviction amortized O(1) with at most about 2n slots held.
// Histories never share a backing array.
func truncate[T any](history []*T, n int) ([]*T, int) {
	over := len(history) - n
	if over <= 0 {
		return history, 0
	}
	clear(history[:over])
	return history[over:], over
}

func last[T any](history []*T) (*T, error) {
	if len(history) == 0 {
		return nil, ErrEmptyBuffer
	}
	return history[len(history)-1], nil
}
