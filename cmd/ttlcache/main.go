package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ttlcache/internal/cache"
)

func main() {
	// Signal-aware context is the root of ownership for long-lived background
	// work. When SIGINT/SIGTERM arrives, ctx is canceled and we initiate a
	// clean shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := cache.NewMetrics("ttlcache", prometheus.NewRegistry())

	c, err := cache.New[string, string](cache.Config{
		Capacity:      3,
		SweepInterval: 100 * time.Millisecond,
		Metrics:       metrics,
	})
	if err != nil {
		log.Fatalf("cache new: %v", err)
	}
	defer func() {
		// Close is idempotent; safe to call in defer.
		if err := c.Close(); err != nil {
			log.Printf("cache close: %v", err)
		}
	}()

	log.Println("ttlcache demo starting")
	log.Printf("config: capacity=%d sweepEvery=%s", 3, 100*time.Millisecond)

	// -------------------------------------------------------------------
	// 1) LRU eviction demo (capacity=3)
	// -------------------------------------------------------------------
	_ = c.Set("a", "A", 0)
	_ = c.Set("b", "B", 0)
	_ = c.Set("c", "C", 0)

	// Touch "a" so "b" becomes least-recently-used.
	if v, ok := c.Get("a"); ok {
		log.Printf("GET a = %q (touches a -> MRU)", v)
	}

	// Insert "d" => cache overflows and evicts LRU (expected: "b").
	_ = c.Set("d", "D", 0)
	if _, ok := c.Get("b"); !ok {
		log.Println("GET b: missing (evicted as LRU)")
	}
	log.Printf("keys after eviction (MRU->LRU): %v", c.Keys())

	// -------------------------------------------------------------------
	// 2) TTL expiry demo (shows the background sweeper)
	// -------------------------------------------------------------------
	// Add a short-lived key. We intentionally do NOT call Get() after it
	// expires; the sweeper should drain it during a periodic cycle.
	_ = c.Set("ttl", "short", 200*time.Millisecond)
	log.Printf("keys after ttl set (MRU->LRU): %v", c.Keys())

	// Wait long enough for expiry + at least one sweep tick.
	wait := time.NewTimer(500 * time.Millisecond)
	defer wait.Stop()

	select {
	case <-ctx.Done():
		log.Println("received shutdown signal")
		return
	case <-wait.C:
	}

	log.Printf("keys after ttl + sweep (MRU->LRU): %v", c.Keys())
	if _, ok := c.Get("ttl"); !ok {
		log.Println("GET ttl: missing (expired and swept)")
	}

	// -------------------------------------------------------------------
	// 3) No-TTL entries only leave via capacity pressure or Delete
	// -------------------------------------------------------------------
	if _, ok := c.Get("a"); ok {
		log.Println("GET a: still present (no TTL, never expires)")
	}
	_ = c.Delete("a")
	if _, ok := c.Get("a"); !ok {
		log.Println("GET a: missing (explicitly deleted)")
	}

	stats := c.Stats()
	log.Printf("stats: hits=%d misses=%d evictions=%d expirations=%d",
		stats.Hits, stats.Misses, stats.Evictions, stats.Expirations)

	fmt.Println("Done. Press Ctrl+C to exit immediately next time.")
}
