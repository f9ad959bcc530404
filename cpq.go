// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// root is the index of the heap's root; index 0 is an unused sentinel so
// that for any node i, parent = i/2 and children = 2i, 2i+1.
const root = 1

// CPQ is a fine-grained, lock-per-node binary max-heap. Insert and PopMax
// are safe to call concurrently from any number of goroutines; the heap
// obeys the max-heap property once all in-flight operations have
// quiesced, not necessarily at every instant in between — see the package
// doc for the precise consistency model.
//
// The zero value is not usable; construct with New.
type CPQ[V any] struct {
	_         pad
	admission Locker
	_         pad
	active    atomix.Int32
	_         pad
	nextOwner atomix.Int64
	_         pad
	draining  atomix.Bool
	_         pad

	nodeLockKind LockKind
	counter      slotCounter
	heap         []*Node[V]
}

// New creates an empty CPQ. By default every Node and the admission lock
// use the platform mutex and slots are assigned in bit-reversed order;
// see WithNodeLock, WithAdmissionLock, WithLinearCounter, and
// WithInitialLevels to change that.
func New[V any](opts ...Option) *CPQ[V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	q := &CPQ[V]{
		admission:    newLocker(cfg.admissionLock),
		nodeLockKind: cfg.nodeLock,
	}
	if cfg.linear {
		q.counter = newLinearCounter()
	} else {
		q.counter = newBitReversedCounter()
	}

	// heap[0] is the sentinel; it is never locked or inspected.
	q.heap = append(q.heap, newNode[V](cfg.nodeLock))

	for lvl, levelSize := 0, 1; lvl < cfg.initialLevels; lvl, levelSize = lvl+1, levelSize*2 {
		for i := 0; i < levelSize; i++ {
			q.heap = append(q.heap, newNode[V](cfg.nodeLock))
		}
	}

	return q
}

// Insert adds value with the given priority. At quiescence, a later
// PopMax returns value no later than after every element with strictly
// higher priority has been popped.
func (q *CPQ[V]) Insert(value V, priority uint64) {
	q.admission.Lock()

	owner := q.nextOwner.Add(1)
	child := q.counter.increment()

	// The slot just handed out opens a tree level that the backing array
	// does not hold yet: append that whole level before anyone touches a
	// Node, since no other goroutine may be mid-traversal while the array
	// grows.
	if q.counter.size() == len(q.heap) {
		sw := spin.Wait{}
		for q.active.Load() != 0 {
			sw.Once()
		}
		grow := q.counter.highBit()
		for i := 0; i < grow; i++ {
			q.heap = append(q.heap, newNode[V](q.nodeLockKind))
		}
	}

	q.active.Add(1)

	slot := q.heap[child]
	slot.Lock()
	slot.init(value, priority, owner)
	q.admission.Unlock()
	slot.Unlock()

	for child > root {
		parentIdx := child / 2
		curIdx := child
		parent := q.heap[parentIdx]
		cur := q.heap[curIdx]

		parent.Lock()
		cur.Lock()

		switch {
		case parent.Tag() == TagAvailable && cur.Tag() == owner:
			if cur.Priority() > parent.Priority() {
				cur.swap(parent)
				child = parentIdx
			} else {
				cur.SetTag(TagAvailable)
				child = 0
			}
		case parent.Tag() == TagEmpty:
			// The element was already lifted higher by a previous
			// iteration; this slot has since been vacated by a pop.
			child = 0
		case cur.Tag() != owner:
			// Another goroutine carried our element further up; follow.
			child = parentIdx
		default:
			// parent is owned by some other in-flight insert: wait it
			// out and retry the same parent/child pair.
		}

		cur.Unlock()
		parent.Unlock()
	}

	if child == root {
		top := q.heap[root]
		top.Lock()
		if top.Tag() == owner {
			top.SetTag(TagAvailable)
		}
		top.Unlock()
	}

	q.active.Add(-1)
}

// PopMax removes and returns the value of some element whose priority is
// maximum among the quiescent heap at the time the call is admitted.
// ok is false if the queue was observed empty.
func (q *CPQ[V]) PopMax() (value V, ok bool) {
	q.admission.Lock()
	q.active.Add(1)

	if q.counter.size() == 0 {
		q.admission.Unlock()
		q.active.Add(-1)
		var zero V
		return zero, false
	}

	bottomIdx := q.counter.decrement()
	bottom := q.heap[bottomIdx]
	bottom.Lock()
	q.admission.Unlock()

	bottomValue, bottomPriority := bottom.Value(), bottom.Priority()
	bottom.SetTag(TagEmpty)
	bottom.Unlock()

	top := q.heap[root]
	top.Lock()

	// An EMPTY root means the heap drained under us: either bottom was the
	// root itself, or a later pop took the root as its bottom. Either way
	// the element this pop owns is the one it just took from bottom.
	if top.Tag() == TagEmpty {
		value = bottomValue
		top.Unlock()
		q.active.Add(-1)
		return value, true
	}

	value = top.Value()
	top.init(bottomValue, bottomPriority, TagAvailable)

	lastValid := len(q.heap) - 1
	parentIdx := root
	parent := top
	for 2*parentIdx <= lastValid {
		leftIdx := 2 * parentIdx
		rightIdx := leftIdx + 1
		rightInRange := rightIdx <= lastValid

		left := q.heap[leftIdx]
		left.Lock()
		var right *Node[V]
		if rightInRange {
			right = q.heap[rightIdx]
			right.Lock()
		}

		var childIdx int
		var child *Node[V]
		switch {
		case left.Tag() == TagEmpty:
			if rightInRange {
				right.Unlock()
			}
			left.Unlock()
			parent.Unlock()
			q.active.Add(-1)
			return value, true
		case !rightInRange || right.Tag() == TagEmpty || left.Priority() > right.Priority():
			if rightInRange {
				right.Unlock()
			}
			childIdx, child = leftIdx, left
		default:
			left.Unlock()
			childIdx, child = rightIdx, right
		}

		if child.Priority() > parent.Priority() {
			child.swap(parent)
			parent.Unlock()
			parent, parentIdx = child, childIdx
		} else {
			child.Unlock()
			break
		}
	}

	parent.Unlock()
	q.active.Add(-1)
	return value, true
}

// Size returns the current element count. Advisory: it may be stale
// under contention, since other goroutines may be mid-Insert or
// mid-PopMax by the time the caller observes the result.
func (q *CPQ[V]) Size() int {
	q.admission.Lock()
	defer q.admission.Unlock()
	return q.counter.size()
}

// Empty reports whether Size() == 0. Advisory, same caveat as Size.
func (q *CPQ[V]) Empty() bool {
	return q.Size() == 0
}

// Cap returns the current backing-array capacity: the number of usable
// slots before the next Insert would trigger growth. Advisory.
func (q *CPQ[V]) Cap() int {
	q.admission.Lock()
	defer q.admission.Unlock()
	return len(q.heap) - 1
}

// Drain blocks until the queue is observed quiescent (no Insert or
// PopMax in flight), or ctx is done, then puts the queue into a terminal
// draining state. It does not stop new operations from being admitted
// after it returns — Insert and PopMax remain callable — it is a
// one-shot point-in-time observation, useful for tests and diagnostics
// that want to inspect the heap invariants without racing an in-flight
// bubble-up or sift-down.
//
// Drain may be called exactly once to completion. A Drain call made
// after an earlier call already reached quiescence returns ErrClosed
// immediately without touching the admission lock.
func (q *CPQ[V]) Drain(ctx context.Context) error {
	if q.draining.Load() {
		return ErrClosed
	}

	q.admission.Lock()
	defer q.admission.Unlock()

	if q.draining.Load() {
		return ErrClosed
	}

	sw := spin.Wait{}
	for q.active.Load() != 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		sw.Once()
	}

	q.draining.Store(true)
	return nil
}
