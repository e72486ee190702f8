package channel_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/intrabus/core/blocker"
	"github.com/dmitrymomot/intrabus/core/channel"
)

type pose struct {
	X, Y float64
}

type command struct {
	Throttle float64
}

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates once and returns the same blocker", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry()
		first, err := channel.GetOrCreate[pose](reg, "/pose")
		require.NoError(t, err)
		second, err := channel.GetOrCreate[pose](reg, "/pose")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, "/pose", first.ChannelName())
		assert.Equal(t, channel.DefaultCapacity, first.Capacity())
	})

	t.Run("uses default capacity option", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry(channel.WithDefaultCapacity(3))
		b, err := channel.GetOrCreate[pose](reg, "/pose")
		require.NoError(t, err)
		assert.Equal(t, 3, b.Capacity())
	})

	t.Run("ignores non-positive default capacity", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry(channel.WithDefaultCapacity(0))
		b, err := channel.GetOrCreate[pose](reg, "/pose")
		require.NoError(t, err)
		assert.Equal(t, channel.DefaultCapacity, b.Capacity())
	})

	t.Run("uses declared capacity", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry(channel.WithChannels(
			blocker.NewAttr(1, "/cmd"),
			blocker.NewAttr(0, "/invalid"),
			blocker.NewAttr(5, ""),
		))

		cmd, err := channel.GetOrCreate[command](reg, "/cmd")
		require.NoError(t, err)
		assert.Equal(t, 1, cmd.Capacity())

		invalid, err := channel.GetOrCreate[command](reg, "/invalid")
		require.NoError(t, err)
		assert.Equal(t, channel.DefaultCapacity, invalid.Capacity())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		_, err := channel.GetOrCreate[pose](channel.NewRegistry(), "")
		require.ErrorIs(t, err, channel.ErrEmptyChannelName)
	})

	t.Run("rejects another payload type", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry()
		_, err := channel.GetOrCreate[pose](reg, "/pose")
		require.NoError(t, err)

		_, err = channel.GetOrCreate[command](reg, "/pose")
		require.ErrorIs(t, err, channel.ErrTypeMismatch)
	})

	t.Run("concurrent creation yields one blocker", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry()
		results := make([]*blocker.Blocker[pose], 16)

		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				b, err := channel.GetOrCreate[pose](reg, "/pose")
				assert.NoError(t, err)
				results[i] = b
			}()
		}
		wg.Wait()

		for _, b := range results {
			assert.Same(t, results[0], b)
		}
		assert.Equal(t, []string{"/pose"}, reg.Channels())
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry()

	_, err := channel.Lookup[pose](reg, "/pose")
	require.ErrorIs(t, err, channel.ErrChannelNotFound)

	_, err = channel.Lookup[pose](reg, "")
	require.ErrorIs(t, err, channel.ErrEmptyChannelName)

	created, err := channel.GetOrCreate[pose](reg, "/pose")
	require.NoError(t, err)

	found, err := channel.Lookup[pose](reg, "/pose")
	require.NoError(t, err)
	assert.Same(t, created, found)

	_, err = channel.Lookup[command](reg, "/pose")
	require.ErrorIs(t, err, channel.ErrTypeMismatch)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	t.Run("creates channel and delivers", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry()
		var got *pose
		require.NoError(t, channel.Subscribe(reg, "/pose", "tracker", func(p *pose) { got = p }))

		msg := &pose{X: 1}
		require.NoError(t, channel.Publish(context.Background(), reg, "/pose", msg))
		assert.Same(t, msg, got)

		b, err := channel.Lookup[pose](reg, "/pose")
		require.NoError(t, err)
		assert.False(t, b.IsPublishedEmpty())
	})

	t.Run("rejects nil message", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry()
		err := channel.Publish[pose](context.Background(), reg, "/pose", nil)
		require.ErrorIs(t, err, channel.ErrNilMessage)
		assert.Empty(t, reg.Channels())
	})

	t.Run("rejects type mismatch", func(t *testing.T) {
		t.Parallel()

		reg := channel.NewRegistry()
		require.NoError(t, channel.Publish(context.Background(), reg, "/pose", &pose{}))
		err := channel.Publish(context.Background(), reg, "/pose", &command{})
		require.ErrorIs(t, err, channel.ErrTypeMismatch)
	})

	t.Run("records producer span", func(t *testing.T) {
		t.Parallel()

		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		reg := channel.NewRegistry(channel.WithTracer(provider.Tracer("test")))

		require.NoError(t, channel.Subscribe(reg, "/pose", "tracker", func(*pose) {}))
		require.NoError(t, channel.Publish(context.Background(), reg, "/pose", &pose{}))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		span := spans[0]
		assert.Equal(t, "intrabus.publish", span.Name())
		assert.Equal(t, trace.SpanKindProducer, span.SpanKind())
		assert.Contains(t, span.Attributes(), attribute.String("messaging.destination.name", "/pose"))
		assert.Contains(t, span.Attributes(), attribute.Int("intrabus.subscribers", 1))
	})
}

func TestSubscribeUnsubscribe(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry()

	err := reg.Unsubscribe("/pose", "tracker")
	require.ErrorIs(t, err, channel.ErrChannelNotFound)

	require.NoError(t, channel.Subscribe(reg, "/pose", "tracker", func(*pose) {}))
	err = channel.Subscribe(reg, "/pose", "tracker", func(*pose) {})
	require.ErrorIs(t, err, blocker.ErrDuplicateSubscription)

	require.NoError(t, reg.Unsubscribe("/pose", "tracker"))
	err = reg.Unsubscribe("/pose", "tracker")
	require.ErrorIs(t, err, blocker.ErrUnknownSubscription)

	require.NoError(t, channel.Subscribe(reg, "/pose", "tracker", func(*pose) {}))
}

func TestRegistry_ObserveAllAndResetAll(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry()
	ctx := context.Background()
	require.NoError(t, channel.Publish(ctx, reg, "/pose", &pose{X: 1}))
	require.NoError(t, channel.Publish(ctx, reg, "/cmd", &command{Throttle: 0.5}))
	require.NoError(t, channel.Subscribe(reg, "/cmd", "control", func(*command) {}))

	reg.ObserveAll()

	poses, err := channel.Lookup[pose](reg, "/pose")
	require.NoError(t, err)
	commands, err := channel.Lookup[command](reg, "/cmd")
	require.NoError(t, err)
	assert.False(t, poses.IsObservedEmpty())
	assert.False(t, commands.IsObservedEmpty())

	reg.ResetAll()
	assert.True(t, poses.IsPublishedEmpty())
	assert.True(t, commands.IsObservedEmpty())
	assert.Zero(t, commands.SubscriberCount())
	assert.Equal(t, []string{"/cmd", "/pose"}, reg.Channels())
}

func TestRegistry_Remove(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry()
	_, err := channel.GetOrCreate[pose](reg, "/pose")
	require.NoError(t, err)

	assert.True(t, reg.Remove("/pose"))
	assert.False(t, reg.Remove("/pose"))
	assert.Empty(t, reg.Channels())

	_, err = channel.GetOrCreate[command](reg, "/pose")
	require.NoError(t, err, "a removed name can be reused with another type")
}

func TestRegistry_Stats(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry(channel.WithChannels(blocker.NewAttr(2, "/pose")))
	ctx := context.Background()
	for i := range 3 {
		require.NoError(t, channel.Publish(ctx, reg, "/pose", &pose{X: float64(i)}))
	}
	require.NoError(t, channel.Subscribe(reg, "/pose", "a", func(*pose) {}))
	require.NoError(t, channel.Subscribe(reg, "/pose", "b", func(*pose) {}))
	reg.ObserveAll()
	require.NoError(t, channel.Publish(ctx, reg, "/cmd", &command{}))

	assert.Equal(t, []channel.Stats{
		{Name: "/cmd", Capacity: channel.DefaultCapacity, Published: 1, Observed: 0, Subscribers: 0},
		{Name: "/pose", Capacity: 2, Published: 2, Observed: 2, Subscribers: 2},
	}, reg.Stats())
}

func TestRegistry_ConcurrentPublishObserve(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry(channel.WithDefaultCapacity(4))
	ctx := context.Background()

	var wg sync.WaitGroup
	for p := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("/ch%d", p%2)
			for i := range 100 {
				assert.NoError(t, channel.Publish(ctx, reg, name, &pose{X: float64(i)}))
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 100 {
			reg.ObserveAll()
			_ = reg.Stats()
		}
	}()
	wg.Wait()

	for _, s := range reg.Stats() {
		assert.Equal(t, 4, s.Published)
		assert.LessOrEqual(t, s.Observed, 4)
	}
}
