package channel

import "context"

// Writer is a producer endpoint bound to one channel.
type Writer[T any] struct {
	r    *Registry
	name string
}

// NewWriter binds a Writer to the named channel, creating the channel if needed so
// that type mismatches surface at construction.
func NewWriter[T any](r *Registry, name string) (*Writer[T], error) {
	if _, err := GetOrCreate[T](r, name); err != nil {
		return nil, err
	}
	return &Writer[T]{r: r, name: name}, nil
}

// ChannelName returns the channel the Writer publishes to.
func (w *Writer[T]) ChannelName() string { return w.name }

// Write publishes msg. The handle is shared with readers and must not be modified afterwards.
func (w *Writer[T]) Write(ctx context.Context, msg *T) error {
	return Publish(ctx, w.r, w.name, msg)
}

// WriteValue copies msg into a new handle and publishes it.
func (w *Writer[T]) WriteValue(ctx context.Context, msg T) error {
	return Publish(ctx, w.r, w.name, &msg)
}
