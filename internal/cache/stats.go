package cache

// Stats is a point-in-time snapshot of cache effectiveness counters.
// Hits / (Hits + Misses) gives the hit ratio.
//
// The fields carry no locking of their own; the cache mutates them under its
// lock and Stats returns a copy, so readers never race mutators.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64 // removed by LRU capacity pressure
	Expirations uint64 // removed because their TTL elapsed
}

func (s *Stats) add(o Stats) {
	s.Hits += o.Hits
	s.Misses += o.Misses
	s.Evictions += o.Evictions
	s.Expirations += o.Expirations
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
