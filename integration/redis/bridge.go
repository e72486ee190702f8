package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/intrabus/core/channel"
	"github.com/dmitrymomot/intrabus/core/logger"
)

// Route delivers payloads received on one Redis channel.
type Route interface {
	RedisChannel() string
	Deliver(ctx context.Context, payload []byte) error
}

type jsonRoute[T any] struct {
	registry     *channel.Registry
	redisChannel string
	channelName  string
}

// JSONRoute decodes each payload from redisChannel as JSON into a T and publishes it
// on the named registry channel.
func JSONRoute[T any](registry *channel.Registry, redisChannel, channelName string) Route {
	return &jsonRoute[T]{
		registry:     registry,
		redisChannel: redisChannel,
		channelName:  channelName,
	}
}

func (r *jsonRoute[T]) RedisChannel() string { return r.redisChannel }

func (r *jsonRoute[T]) Deliver(ctx context.Context, payload []byte) error {
	msg := new(T)
	if err := json.Unmarshal(payload, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodePayload, err)
	}
	return channel.Publish(ctx, r.registry, r.channelName, msg)
}

// Bridge feeds messages from Redis pub/sub into registry channels.
type Bridge struct {
	client goredis.UniversalClient
	routes map[string][]Route
	logger *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// NewBridge creates a bridge for routes. Several routes may share a Redis channel.
func NewBridge(client goredis.UniversalClient, routes []Route, opts ...Option) *Bridge {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	byChannel := make(map[string][]Route, len(routes))
	for _, r := range routes {
		byChannel[r.RedisChannel()] = append(byChannel[r.RedisChannel()], r)
	}

	return &Bridge{
		client: client,
		routes: byChannel,
		logger: o.logger.With(logger.Component("redis-bridge")),
		ready:  make(chan struct{}),
	}
}

// Ready is closed once Run has an active subscription.
func (b *Bridge) Ready() <-chan struct{} {
	return b.ready
}

// Run subscribes to every routed Redis channel and delivers messages until ctx is
// done. Messages that fail to deliver are logged and skipped.
func (b *Bridge) Run(ctx context.Context) error {
	if len(b.routes) == 0 {
		return ErrNoRoutes
	}

	channels := slices.Sorted(maps.Keys(b.routes))
	pubsub := b.client.Subscribe(ctx, channels...)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %v: %w", channels, err)
	}
	b.readyOnce.Do(func() { close(b.ready) })

	b.logger.Info("redis bridge started", logger.Count("channels", len(channels)))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("redis bridge stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return ErrSubscriptionEnded
			}
			b.deliver(ctx, msg)
		}
	}
}

func (b *Bridge) deliver(ctx context.Context, msg *goredis.Message) {
	for _, r := range b.routes[msg.Channel] {
		if err := r.Deliver(ctx, []byte(msg.Payload)); err != nil {
			b.logger.Error("redis message dropped",
				logger.Topic(msg.Channel),
				logger.Error(err))
		}
	}
}
