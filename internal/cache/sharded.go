package cache

import (
	"errors"
	"time"
)

// Sharded spreads keys across independent single-lock caches so unrelated
// keys stop contending on one mutex. Each shard keeps the exact semantics of
// a standalone Cache; only the total capacity is split. The capacity bound
// therefore holds per shard, and a pathological hash can fill one shard
// while others sit empty.
type Sharded[K comparable, V any] struct {
	shards []*Cache[K, V]
	hash   func(K) uint64
}

// NewSharded builds shards independent caches from one Config template,
// giving each ceil(Capacity/shards) entries. hash picks the shard for a key
// and must be deterministic. A shared cfg.Metrics aggregates across shards.
func NewSharded[K comparable, V any](shards int, hash func(K) uint64, cfg Config) (*Sharded[K, V], error) {
	if shards <= 0 {
		return nil, ErrInvalidShards
	}
	if hash == nil {
		return nil, ErrNilHash
	}
	if cfg.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	perShard := (cfg.Capacity + shards - 1) / shards

	s := &Sharded[K, V]{
		shards: make([]*Cache[K, V], 0, shards),
		hash:   hash,
	}
	for i := 0; i < shards; i++ {
		shardCfg := cfg
		shardCfg.Capacity = perShard
		c, err := New[K, V](shardCfg)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.shards = append(s.shards, c)
	}
	return s, nil
}

func (s *Sharded[K, V]) shard(key K) *Cache[K, V] {
	return s.shards[s.hash(key)%uint64(len(s.shards))]
}

// Get reads a key from its shard.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

// Set writes a key to its shard. TTL semantics match Cache.Set.
func (s *Sharded[K, V]) Set(key K, value V, ttl time.Duration) error {
	return s.shard(key).Set(key, value, ttl)
}

// Delete removes a key from its shard, if present.
func (s *Sharded[K, V]) Delete(key K) error {
	return s.shard(key).Delete(key)
}

// Len sums entry counts across shards. The per-shard overcounting caveat of
// Cache.Len applies.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, c := range s.shards {
		total += c.Len()
	}
	return total
}

// DrainExpired drains every shard and returns the total evicted.
func (s *Sharded[K, V]) DrainExpired() int {
	total := 0
	for _, c := range s.shards {
		total += c.DrainExpired()
	}
	return total
}

// Stats aggregates counters across shards.
func (s *Sharded[K, V]) Stats() Stats {
	var total Stats
	for _, c := range s.shards {
		snap := c.Stats()
		total.add(snap)
	}
	return total
}

// Close shuts down every shard's sweeper. Idempotent; errors are joined.
func (s *Sharded[K, V]) Close() error {
	var errs []error
	for _, c := range s.shards {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HashString is a shard picker for string keys (FNV-1a, allocation free).
func HashString(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}
