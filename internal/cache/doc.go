// Package cache implements a single-process, bounded, in-memory key–value
// cache combining LRU capacity eviction with per-entry TTL expiry.
//
// Goals for this package:
//   - Make the core data structures explicit (map index + intrusive recency
//     list + min-heap over expiry deadlines)
//   - Provide O(1) Set/Get/Delete, with expiry discovery costing O(k log k)
//     for k expired entries rather than a scan over everything
//   - Be concurrency-safe under one coarse lock, with correctness as the
//     primary goal; Sharded trades that lock for per-shard locks
//   - Support per-entry TTL with both lazy expiration and an owned,
//     cleanly stoppable background sweeper (no leaks on shutdown)
package cache
