package cache

import "time"

// sweepLoop periodically drains expired entries.
//
// Why a ticker-driven heap drain?
//   - Cost tracks how much actually expired, not cache size; a tick where
//     nothing expired is a single O(1) peek
//   - An entry with an imminent deadline but high recency rank is still
//     found promptly, which a tail-walk of the LRU list would miss
//   - It avoids per-entry goroutines/timers (expensive and hard to own)
//
// Cancellation lands only between ticks: a cycle that has taken the lock
// always finishes its current drain.
func (c *Cache[K, V]) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			// If Close raced with the ticker, still safe: the drain runs one
			// last time and the next select observes ctx.Done.
			c.drainExpiredLocked(c.now())
			c.mu.Unlock()
			c.metrics.sweep()
		}
	}
}
