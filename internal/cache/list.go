package cache

// recencyList is an intrusive doubly-linked list over cache nodes with
// sentinel head and tail, so front/back operations never branch on nil.
// Front = most recently used (MRU), back = least recently used (LRU).
//
// The list does not own node lifetime; the cache does. No operation
// allocates.
type recencyList[K comparable, V any] struct {
	head *node[K, V] // sentinel; head.next is the MRU node
	tail *node[K, V] // sentinel; tail.prev is the LRU node
}

func newRecencyList[K comparable, V any]() *recencyList[K, V] {
	l := &recencyList[K, V]{
		head: &node[K, V]{},
		tail: &node[K, V]{},
	}
	l.head.next = l.tail
	l.tail.prev = l.head
	return l
}

// pushFront links n at the MRU position.
func (l *recencyList[K, V]) pushFront(n *node[K, V]) {
	n.next = l.head.next
	n.prev = l.head
	l.head.next.prev = n
	l.head.next = n
}

// pushBack links n at the LRU position.
func (l *recencyList[K, V]) pushBack(n *node[K, V]) {
	n.prev = l.tail.prev
	n.next = l.tail
	l.tail.prev.next = n
	l.tail.prev = n
}

// remove unlinks n from wherever it sits. n's own links are left dangling;
// callers relink or drop the node.
func (l *recencyList[K, V]) remove(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

// moveToFront promotes an already-linked node to MRU.
func (l *recencyList[K, V]) moveToFront(n *node[K, V]) {
	l.remove(n)
	l.pushFront(n)
}

// popBack unlinks and returns the LRU node, or nil when the list holds no
// real nodes.
func (l *recencyList[K, V]) popBack() *node[K, V] {
	if l.tail.prev == l.head {
		return nil
	}
	n := l.tail.prev
	l.remove(n)
	return n
}

func (l *recencyList[K, V]) empty() bool {
	return l.head.next == l.tail
}
