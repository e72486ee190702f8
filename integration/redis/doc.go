// Package redis connects the bus to Redis pub/sub.
//
// It wraps github.com/redis/go-redis/v9 with connection validation, ping retries and a
// health check, and provides two transport adapters:
//
//   - Bridge: subscribes to Redis channels and publishes decoded payloads into
//     registry channels through Routes
//   - Forward: subscribes to a Blocker and republishes each message to a Redis channel
//
// # Configuration
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// Both redis:// and rediss:// URLs are accepted.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	bridge := redis.NewBridge(client, []redis.Route{
//		redis.JSONRoute[Pose](registry, "robot.pose", "/localization/pose"),
//	}, redis.WithLogger(log))
//	go bridge.Run(ctx)
//
//	pose, _ := channel.GetOrCreate[Pose](registry, "/localization/pose")
//	stop, err := redis.Forward(ctx, client, pose, "redis-mirror", "robot.pose.mirror")
//	defer stop()
//
// Redis pub/sub is at-most-once; messages published while the bridge is not
// subscribed are lost.
//
// # Error Handling
//
//   - ErrFailedToParseRedisConnString: the connection URL is malformed
//   - ErrRedisNotReady: no successful ping within the retry budget
//   - ErrEmptyConnectionURL: no connection URL configured
//   - ErrHealthcheckFailed: the health check ping failed
//   - ErrNoRoutes: Run was called on a bridge without routes
//   - ErrDecodePayload: a payload could not be decoded; logged by the bridge
package redis
