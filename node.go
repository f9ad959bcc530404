// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

// Tag values a Node carries alongside its payload. Any value greater
// than zero is a positive owner id naming the Insert call (each admitted
// Insert mints a fresh id) that is still bubbling an element up through
// that slot.
const (
	// TagEmpty marks a slot as unused.
	TagEmpty int64 = -1
	// TagAvailable marks a slot whose element has settled: no insert is
	// still in flight through it.
	TagAvailable int64 = -2
)

// Node is a single heap slot: the payload, its priority, a tag
// describing the slot's state, and the lock that makes every read or
// write of the other three fields safe under lock-coupling.
//
// A Node's lock is held only briefly — never across a blocking
// operation — and the CPQ core never holds more than three Node locks at
// once (a parent and its two children during sift-down), always acquired
// top-down with the left child before the right, so any Locker
// implementation works here without risk of deadlock from Node locking
// alone.
type Node[V any] struct {
	value    V
	priority uint64
	tag      int64
	lock     Locker
}

func newNode[V any](kind LockKind) *Node[V] {
	return &Node[V]{tag: TagEmpty, lock: newLocker(kind)}
}

// Lock acquires the Node's lock.
func (n *Node[V]) Lock() { n.lock.Lock() }

// Unlock releases the Node's lock.
func (n *Node[V]) Unlock() { n.lock.Unlock() }

// init sets the value, priority, and tag of the slot. The caller must
// hold the Node's lock.
func (n *Node[V]) init(value V, priority uint64, tag int64) {
	n.value = value
	n.priority = priority
	n.tag = tag
}

// swap exchanges value, priority, and tag with other. Both Nodes must be
// locked by the caller before calling swap.
func (n *Node[V]) swap(other *Node[V]) {
	n.value, other.value = other.value, n.value
	n.priority, other.priority = other.priority, n.priority
	n.tag, other.tag = other.tag, n.tag
}

func (n *Node[V]) Value() V             { return n.value }
func (n *Node[V]) Priority() uint64     { return n.priority }
func (n *Node[V]) Tag() int64           { return n.tag }
func (n *Node[V]) SetValue(v V)         { n.value = v }
func (n *Node[V]) SetPriority(p uint64) { n.priority = p }
func (n *Node[V]) SetTag(tag int64)     { n.tag = tag }
