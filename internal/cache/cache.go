package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Config controls cache capacity and maintenance behavior.
//
//   - Capacity must be positive. New rejects anything else up front rather
//     than letting it surface later as odd eviction behavior.
//   - SweepInterval <= 0 disables the background sweeper (lazy expiration on
//     Get/Set still works).
//   - ShutdownTimeout bounds how long Close waits for an in-flight sweep;
//     <= 0 selects the 5s default.
//   - Clock overrides time.Now, which lets TTL tests run without sleeping.
//   - Metrics is optional; nil means no instrumentation.
//
// Background sweeping exists to bound memory growth when keys are written
// once and never read again. Lazy expiration alone can leave dead entries in
// memory indefinitely.
type Config struct {
	Capacity        int
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
	Clock           func() time.Time
	Metrics         *Metrics
}

const defaultShutdownTimeout = 5 * time.Second

var (
	// ErrInvalidCapacity indicates a non-positive capacity at construction.
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")
	// ErrInvalidShards indicates a non-positive shard count at construction.
	ErrInvalidShards = errors.New("cache: shard count must be positive")
	// ErrNilHash indicates a sharded cache was built without a hash function.
	ErrNilHash = errors.New("cache: hash function must not be nil")
	// ErrClosed is returned by mutating operations after Close.
	ErrClosed = errors.New("cache: closed")
	// ErrShutdownTimeout is returned when Close gives up waiting for the
	// sweeper. The sweeper is already canceled at that point and exits on
	// its own once its current drain completes.
	ErrShutdownTimeout = errors.New("cache: timed out waiting for sweeper to stop")
)

// Cache is a concurrency-safe, bounded in-memory key-value cache combining
// LRU capacity eviction with per-entry TTL expiry.
//
// Three structures share every node: a map for O(1) lookup, an intrusive
// doubly-linked list for recency order, and a min-heap over expiry deadlines
// so discovering what has expired costs O(k log k) for k expired entries
// instead of a scan over everything. The heap is allowed to hold stale
// references; they are skipped with an identity check when they surface
// (lazy deletion).
//
// A single mutex covers the full body of every operation, the background
// sweep included. Concurrent calls are linearizable with respect to that
// lock. This is a deliberate simplicity-over-throughput choice; Sharded
// relaxes it without changing per-shard semantics.
//
// Ownership model: Cache owns its sweeper goroutine. Call Close to stop it.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	items    map[K]*node[K, V]
	recency  *recencyList[K, V]
	expiry   expiryHeap[K, V]

	stats   Stats
	metrics *Metrics
	now     func() time.Time

	// Goroutine ownership.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	sweepEvery   time.Duration
	shutdownWait time.Duration
	closed       bool
}

// New constructs a cache and starts background sweeping (if enabled).
func New[K comparable, V any](cfg Config) (*Cache[K, V], error) {
	if cfg.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	wait := cfg.ShutdownTimeout
	if wait <= 0 {
		wait = defaultShutdownTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Cache[K, V]{
		capacity:     cfg.Capacity,
		items:        make(map[K]*node[K, V], cfg.Capacity),
		recency:      newRecencyList[K, V](),
		metrics:      cfg.Metrics,
		now:          clock,
		ctx:          ctx,
		cancel:       cancel,
		sweepEvery:   cfg.SweepInterval,
		shutdownWait: wait,
	}

	if c.sweepEvery > 0 {
		c.wg.Add(1)
		go c.sweepLoop()
	}

	return c, nil
}

// Close stops the background sweeper and prevents further mutation.
//
// Close is idempotent. It waits up to ShutdownTimeout for an in-flight sweep
// to finish; a sweep is never interrupted mid-drain. If the wait expires,
// Close returns ErrShutdownTimeout and the sweeper winds down on its own.
func (c *Cache[K, V]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancel := c.cancel
	c.mu.Unlock()

	// Cancel outside the lock so shutdown doesn't block callers, and so a
	// sweep cycle already underway can take the lock and finish.
	cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(c.shutdownWait)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return ErrShutdownTimeout
	}
}

// Set writes or overwrites a key.
//
// ttl semantics:
//   - ttl <= 0 means "no expiration"; the entry lives until capacity
//     eviction or Delete
//   - positive ttl sets an absolute deadline of now+ttl
//
// Complexity: O(1) to locate/insert and per eviction, O(log n) per heap
// push, plus O(k log k) when k entries have expired since the last drain.
func (c *Cache[K, V]) Set(key K, value V, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	now := c.now()
	var deadline time.Time
	if ttl > 0 {
		deadline = now.Add(ttl)
	}

	if n, ok := c.items[key]; ok {
		n.value = value
		n.deadline = deadline
		// A fresh heap entry carries the new deadline; the entry pushed for
		// the old deadline (if any) is now stale and resolves lazily.
		if !deadline.IsZero() {
			c.expiry.push(n)
		}
		// Updating counts as use; move to MRU.
		c.recency.moveToFront(n)
		return nil
	}

	// Reclaim expired entries before the capacity check so they never cost
	// a live key its slot. Bounded by how many have actually expired, not by
	// cache size.
	c.drainExpiredLocked(now)

	if len(c.items) >= c.capacity {
		if lru := c.recency.popBack(); lru != nil {
			delete(c.items, lru.key)
			c.stats.Evictions++
			c.metrics.evicted()
			c.metrics.entryRemoved()
			// lru's heap entry, if any, is now stale.
		}
	}

	n := &node[K, V]{key: key, value: value, deadline: deadline}
	c.recency.pushFront(n)
	c.items[key] = n
	// Only TTL entries go into the heap; no-TTL entries never expire.
	if !deadline.IsZero() {
		c.expiry.push(n)
	}
	c.metrics.entryAdded()
	return nil
}

// Get reads a key and promotes it to most recently used.
//
// Expired entries are evicted on access and reported as absent; their heap
// references are left behind as stale. A miss has no side effects.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	n, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		c.metrics.miss()
		return zero, false
	}

	if n.expired(c.now()) {
		c.evictLocked(n)
		c.stats.Expirations++
		c.stats.Misses++
		c.metrics.expired()
		c.metrics.miss()
		return zero, false
	}

	c.recency.moveToFront(n)
	c.stats.Hits++
	c.metrics.hit()
	return n.value, true
}

// Delete removes a key if present. Removing an absent key is a no-op.
//
// The entry's heap reference (if any) is not touched; it is discarded the
// next time it reaches the top of the heap.
func (c *Cache[K, V]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if n, ok := c.items[key]; ok {
		c.evictLocked(n)
	}
	return nil
}

// Len returns the number of indexed entries.
//
// Len may overcount live entries: keys that have expired but not yet been
// swept still count until lazy cleanup or the background sweeper reaches
// them. Call DrainExpired first for an exact live count.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns keys in MRU -> LRU order.
//
// This is a debug/teaching helper used by the demo.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]K, 0, len(c.items))
	for n := c.recency.head.next; n != c.recency.tail; n = n.next {
		out = append(out, n.key)
	}
	return out
}

// DrainExpired removes every entry whose deadline has passed and returns how
// many it evicted. Stale heap references discarded along the way are not
// counted. This is the same routine the Set slow path and the background
// sweeper run.
func (c *Cache[K, V]) DrainExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drainExpiredLocked(c.now())
}

// drainExpiredLocked pops the heap while its minimum deadline has passed.
//
// Each popped entry is evicted only if it is fresh: the index must still map
// the key to that exact node and the node's current deadline must be the one
// the entry was pushed with. Anything else means the node was
// capacity-evicted, Deleted, or refreshed with a new TTL; such entries are
// stale and are dropped without touching the store.
//
// O(k log k) for k expired-or-stale entries; O(1) when the earliest deadline
// has not yet passed.
func (c *Cache[K, V]) drainExpiredLocked(now time.Time) int {
	drained := 0
	for {
		top, ok := c.expiry.peek()
		if !ok || top.deadline.After(now) {
			break
		}
		e, _ := c.expiry.pop()

		cur, live := c.items[e.node.key]
		if !live || cur != e.node || !e.node.deadline.Equal(e.deadline) {
			continue // stale
		}

		c.evictLocked(e.node)
		c.stats.Expirations++
		c.metrics.expired()
		drained++
	}
	return drained
}

// evictLocked unlinks n from the recency list and the index. Its heap entry,
// if any, stays behind as stale. Caller must hold the lock.
func (c *Cache[K, V]) evictLocked(n *node[K, V]) {
	c.recency.remove(n)
	delete(c.items, n.key)
	c.metrics.entryRemoved()
}
