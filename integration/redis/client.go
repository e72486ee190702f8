package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/intrabus/core/logger"
)

// Config holds the connection settings read from the environment.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect creates a client and waits until the server answers a ping.
// Attempts are spaced by RetryInterval, doubling after each failure.
// Failed attempts are logged at warn level when a logger is passed with WithLogger.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*goredis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	redisOpts, err := goredis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	client := goredis.NewClient(redisOpts)
	if err := waitReady(ctx, client, max(cfg.RetryAttempts, 1), cfg.RetryInterval, o.logger); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisNotReady, err)
	}
	return client, nil
}

func waitReady(ctx context.Context, client *goredis.Client, attempts int, interval time.Duration, log *slog.Logger) error {
	start := time.Now()
	var err error
	for attempt := range attempts {
		if err = client.Ping(ctx).Err(); err == nil {
			return nil
		}
		log.Warn("redis ping failed",
			logger.RetryCount(attempt+1),
			logger.Elapsed(start),
			logger.Error(err))
		if attempt == attempts-1 {
			break
		}

		timer := time.NewTimer(interval << attempt)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// Healthcheck returns a function that pings the server.
func Healthcheck(client goredis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		return nil
	}
}
