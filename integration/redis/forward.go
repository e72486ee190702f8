package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/intrabus/core/blocker"
	"github.com/dmitrymomot/intrabus/core/logger"
)

// Forward subscribes to b under subscriberID and republishes every message to
// redisChannel as JSON. The Redis call runs inside the callback, so it adds to the
// latency of each Publish on b. Failures are logged.
//
// The subscription lasts until ctx is done or the returned function is called,
// whichever comes first. The function reports whether it removed the subscription.
func Forward[T any](ctx context.Context, client goredis.UniversalClient, b *blocker.Blocker[T], subscriberID, redisChannel string, opts ...Option) (func() bool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger.With(
		logger.Channel(b.ChannelName()),
		logger.Subscriber(subscriberID),
		logger.Topic(redisChannel),
	)

	ok := b.Subscribe(subscriberID, func(msg *T) {
		if ctx.Err() != nil {
			return
		}
		data, err := json.Marshal(msg)
		if err != nil {
			log.Error("encode message", logger.Error(err))
			return
		}
		if err := client.Publish(ctx, redisChannel, data).Err(); err != nil {
			log.Error("forward message", logger.Error(err))
		}
	})
	if !ok {
		return nil, fmt.Errorf("%w: %q on channel %q", blocker.ErrDuplicateSubscription, subscriberID, b.ChannelName())
	}

	stopOnDone := context.AfterFunc(ctx, func() {
		if b.Unsubscribe(subscriberID) {
			log.Debug("forwarder stopped", logger.Error(context.Cause(ctx)))
		}
	})

	return func() bool {
		if !stopOnDone() {
			return false
		}
		return b.Unsubscribe(subscriberID)
	}, nil
}
