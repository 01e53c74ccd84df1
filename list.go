package lrucache

// nilIndex marks the absence of a neighbour in the recency list.
const nilIndex = -1

type node[K comparable, V any] struct {
	key   K
	value V
	prev  int
	next  int
}

// recency is a doubly linked list of entries stored in an arena.
//
// Links are indices into nodes rather than pointers, so relinking is O(1)
// and the whole list is a handful of slices. head is the most recently used
// entry, tail the least recently used one.
type recency[K comparable, V any] struct {
	nodes []node[K, V]
	free  []int // slots released by remove, reused before growing nodes
	head  int
	tail  int
}

func newRecency[K comparable, V any](sizeHint int) recency[K, V] {
	return recency[K, V]{
		nodes: make([]node[K, V], 0, sizeHint),
		head:  nilIndex,
		tail:  nilIndex,
	}
}

// pushFront stores (k, v) in a free slot and links it at the head.
func (r *recency[K, V]) pushFront(k K, v V) int {
	var i int
	if n := len(r.free); n > 0 {
		i = r.free[n-1]
		r.free = r.free[:n-1]
		r.nodes[i] = node[K, V]{key: k, value: v}
	} else {
		i = len(r.nodes)
		r.nodes = append(r.nodes, node[K, V]{key: k, value: v})
	}
	r.linkFront(i)

	return i
}

func (r *recency[K, V]) linkFront(i int) {
	n := &r.nodes[i]
	n.prev = nilIndex
	n.next = r.head
	if r.head != nilIndex {
		r.nodes[r.head].prev = i
	} else {
		r.tail = i
	}
	r.head = i
}

func (r *recency[K, V]) unlink(i int) {
	n := &r.nodes[i]
	if n.prev != nilIndex {
		r.nodes[n.prev].next = n.next
	} else {
		r.head = n.next
	}
	if n.next != nilIndex {
		r.nodes[n.next].prev = n.prev
	} else {
		r.tail = n.prev
	}
	n.prev, n.next = nilIndex, nilIndex
}

func (r *recency[K, V]) moveToFront(i int) {
	if r.head == i {
		return
	}
	r.unlink(i)
	r.linkFront(i)
}

// replaceTail overwrites the least recently used entry with (k, v) and moves
// it to the head. It returns the slot and the key that was displaced.
// The list must not be empty.
func (r *recency[K, V]) replaceTail(k K, v V) (int, K) {
	i := r.tail
	old := r.nodes[i].key
	r.nodes[i].key = k
	r.nodes[i].value = v
	r.moveToFront(i)

	return i, old
}

// remove unlinks slot i and zeroes it so the key and value can be collected.
func (r *recency[K, V]) remove(i int) {
	r.unlink(i)
	r.nodes[i] = node[K, V]{prev: nilIndex, next: nilIndex}
	r.free = append(r.free, i)
}

func (r *recency[K, V]) reset() {
	clear(r.nodes)
	r.nodes = r.nodes[:0]
	r.free = r.free[:0]
	r.head = nilIndex
	r.tail = nilIndex
}

// walk calls f for every slot from head to tail until f returns false.
func (r *recency[K, V]) walk(f func(i int) bool) bool {
	for i := r.head; i != nilIndex; {
		next := r.nodes[i].next
		if !f(i) {
			return false
		}
		i = next
	}

	return true
}
