package xredislog

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Conn is the slice of the go-redis surface the logger consumes:
// channel publish and stream append. The connection is owned by the
// caller; the logger never dials or closes it. Implementations must be
// safe for concurrent use by any number of goroutines, as every
// asserted go-redis client is.
type Conn interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

var (
	_ Conn = (*redis.Client)(nil)
	_ Conn = (*redis.ClusterClient)(nil)
	_ Conn = (*redis.Ring)(nil)
	_ Conn = redis.UniversalClient(nil)
)
