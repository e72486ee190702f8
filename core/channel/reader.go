package channel

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/intrabus/core/blocker"
)

type readerOptions[T any] struct {
	id string
	cb blocker.Callback[T]
}

// ReaderOption configures a Reader.
type ReaderOption[T any] func(*readerOptions[T])

// WithCallback subscribes cb to the channel. It receives every later publish until
// the Reader is closed. Nil is ignored.
func WithCallback[T any](cb blocker.Callback[T]) ReaderOption[T] {
	return func(o *readerOptions[T]) {
		if cb != nil {
			o.cb = cb
		}
	}
}

// WithSubscriberID replaces the generated subscriber id. Empty ids are ignored.
func WithSubscriberID[T any](id string) ReaderOption[T] {
	return func(o *readerOptions[T]) {
		if id != "" {
			o.id = id
		}
	}
}

// Reader is a consumer endpoint bound to one channel.
// It supports pull consumption (Observe, then Latest/Oldest/Messages) and, when
// built with WithCallback, push consumption under its subscriber id.
//
// A closed Reader reads as empty and can no longer modify the channel.
type Reader[T any] struct {
	id     string
	name   string
	b      *blocker.Blocker[T]
	push   bool
	closed atomic.Bool
}

// NewReader binds a Reader to the named channel, creating the channel if needed.
// The subscriber id defaults to a random uuid.
//
// Example:
//
//	rd, err := channel.NewReader(reg, "/localization/pose",
//	    channel.WithCallback(func(p *Pose) { track(p) }),
//	)
func NewReader[T any](r *Registry, name string, opts ...ReaderOption[T]) (*Reader[T], error) {
	o := readerOptions[T]{id: uuid.NewString()}
	for _, opt := range opts {
		opt(&o)
	}

	b, err := GetOrCreate[T](r, name)
	if err != nil {
		return nil, err
	}

	rd := &Reader[T]{
		id:   o.id,
		name: name,
		b:    b,
	}
	if o.cb != nil {
		if err := Subscribe(r, name, rd.id, o.cb); err != nil {
			return nil, err
		}
		rd.push = true
	}
	return rd, nil
}

// ID returns the subscriber id used for the callback.
func (rd *Reader[T]) ID() string { return rd.id }

// ChannelName returns the channel the Reader is bound to.
func (rd *Reader[T]) ChannelName() string { return rd.name }

// Observe snapshots the channel's published history.
func (rd *Reader[T]) Observe() {
	if rd.closed.Load() {
		return
	}
	rd.b.Observe()
}

// Empty reports whether the last snapshot is empty. Always true after Close.
func (rd *Reader[T]) Empty() bool {
	if rd.closed.Load() {
		return true
	}
	return rd.b.IsObservedEmpty()
}

// HasReceived reports whether the channel currently holds any published message.
// Always false after Close.
func (rd *Reader[T]) HasReceived() bool {
	if rd.closed.Load() {
		return false
	}
	return !rd.b.IsPublishedEmpty()
}

// Latest returns the newest message of the last snapshot.
func (rd *Reader[T]) Latest() (*T, error) {
	if rd.closed.Load() {
		return nil, ErrReaderClosed
	}
	return rd.b.GetLatestObservedPtr()
}

// Oldest returns the oldest message of the last snapshot.
func (rd *Reader[T]) Oldest() (*T, error) {
	if rd.closed.Load() {
		return nil, ErrReaderClosed
	}
	return rd.b.GetOldestObservedPtr()
}

// Messages returns the last snapshot, oldest first.
func (rd *Reader[T]) Messages() []*T {
	if rd.closed.Load() {
		return nil
	}
	return rd.b.Observed()
}

// ClearData empties both histories of the channel.
// This affects every reader of the channel. It returns ErrReaderClosed after Close.
func (rd *Reader[T]) ClearData() error {
	if rd.closed.Load() {
		return ErrReaderClosed
	}
	rd.b.ClearPublished()
	rd.b.ClearObserved()
	return nil
}

// Close unsubscribes the callback, if any. Further reads fail with ErrReaderClosed.
// Close is idempotent.
//
// A Publish that started before Close returned may still invoke the callback once,
// so release what the callback uses only after in-flight publishes have finished.
func (rd *Reader[T]) Close() {
	if rd.closed.Swap(true) {
		return
	}
	if rd.push {
		rd.b.Unsubscribe(rd.id)
	}
}
