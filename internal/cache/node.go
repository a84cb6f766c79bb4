package cache

import "time"

// node is the record shared by all three cache structures: the lookup map
// points at it, the recency list links through it, and the expiry heap holds
// references to it.
//
// A zero deadline means "never expires". Staleness checks compare node
// identity (pointer equality), never key/value equality.
type node[K comparable, V any] struct {
	key      K
	value    V
	deadline time.Time // zero = no expiry

	prev *node[K, V]
	next *node[K, V]
}

// expired reports whether the node carries a deadline that has passed.
// now strictly after the deadline counts as expired; now == deadline does not.
func (n *node[K, V]) expired(now time.Time) bool {
	return !n.deadline.IsZero() && now.After(n.deadline)
}
