package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the go-redis universal client, aliased behind an interface so
// repositories never import go-redis constructors directly
type Client interface {
	redis.UniversalClient
}
