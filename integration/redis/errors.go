package redis

import "errors"

// Errors returned by the connection helpers and the bridge. Check them with errors.Is.
var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")

	ErrNoRoutes          = errors.New("bridge has no routes")
	ErrDecodePayload     = errors.New("failed to decode redis payload")
	ErrSubscriptionEnded = errors.New("redis subscription closed")
)
