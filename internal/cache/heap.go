package cache

import (
	"container/heap"
	"time"
)

// expiryEntry pairs a node with the deadline it had when pushed. The copy
// matters: Set can refresh a live node's deadline in place, and ordering by
// a captured value keeps the heap invariant intact even after the node has
// moved on. An entry whose deadline no longer matches the node's current one
// is stale and gets discarded at pop time.
type expiryEntry[K comparable, V any] struct {
	node     *node[K, V]
	deadline time.Time
}

// expiryQueue implements heap.Interface ordered by soonest deadline.
type expiryQueue[K comparable, V any] []expiryEntry[K, V]

func (q expiryQueue[K, V]) Len() int { return len(q) }

func (q expiryQueue[K, V]) Less(i, j int) bool {
	return q[i].deadline.Before(q[j].deadline)
}

func (q expiryQueue[K, V]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *expiryQueue[K, V]) Push(x any) {
	*q = append(*q, x.(expiryEntry[K, V]))
}

func (q *expiryQueue[K, V]) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = expiryEntry[K, V]{} // release the node reference
	*q = old[0 : n-1]
	return e
}

// expiryHeap wraps expiryQueue with the small typed surface the cache uses.
//
// The heap may hold stale entries for nodes that were capacity-evicted,
// explicitly removed, or given a new TTL; nothing here ever searches for or
// deletes an arbitrary element. Staleness is the caller's problem, resolved
// with a freshness check after pop (lazy deletion).
type expiryHeap[K comparable, V any] struct {
	q expiryQueue[K, V]
}

// push adds an entry for n keyed by its current deadline. O(log n).
func (h *expiryHeap[K, V]) push(n *node[K, V]) {
	heap.Push(&h.q, expiryEntry[K, V]{node: n, deadline: n.deadline})
}

// peek returns the entry with the soonest deadline without removing it. O(1).
func (h *expiryHeap[K, V]) peek() (expiryEntry[K, V], bool) {
	if len(h.q) == 0 {
		return expiryEntry[K, V]{}, false
	}
	return h.q[0], true
}

// pop removes and returns the entry with the soonest deadline. O(log n).
func (h *expiryHeap[K, V]) pop() (expiryEntry[K, V], bool) {
	if len(h.q) == 0 {
		return expiryEntry[K, V]{}, false
	}
	return heap.Pop(&h.q).(expiryEntry[K, V]), true
}

func (h *expiryHeap[K, V]) len() int {
	return len(h.q)
}
