package cache

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// Key builds a stable cache key from the call arguments of a fetch:
// identifiers, window bounds, and flags. Correctness never depends on the
// cache, so collisions only cost a refetch after eviction.
func Key(prefix string, parts ...string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%x", prefix, h.Sum64())
}
