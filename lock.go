// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

// Locker is the mutual-exclusion contract the CPQ core depends on.
//
// Lock blocks until the caller holds the lock. Unlock releases it.
// Reentrant acquisition is not required and must not be relied on:
// a goroutine that calls Lock twice on the same Locker without an
// intervening Unlock deadlocks against itself exactly as sync.Mutex does.
//
// The core holds at most three Node Lockers at once (a parent and its two
// children during PopMax's sift-down) and always acquires them top-down,
// parent before children and left child before right (see Node), so
// implementations do not need to support recursive acquisition or
// ordering beyond that.
type Locker interface {
	Lock()
	Unlock()
}

// LockKind selects which Locker implementation a CPQ's Nodes (and,
// independently, its admission lock) use. The choice has no effect on
// correctness — every variant satisfies the same Lock/Unlock contract —
// only on performance under a given contention profile.
type LockKind int

const (
	// LockPlatform wraps sync.Mutex. Best for long or unpredictable
	// critical sections, or when goroutines may be preempted while
	// holding the lock.
	LockPlatform LockKind = iota
	// LockTAS busy-loops a single atomic test-and-set word.
	LockTAS
	// LockTATAS reads the word without an atomic instruction until it
	// observes free, then attempts the test-and-set. Reduces cache-line
	// ping-pong versus plain TAS under contention.
	LockTATAS
	// LockBackoff is TAS where each failed attempt doubles a local spin
	// budget before retrying.
	LockBackoff
	// LockSleeping spins briefly, then parks on a channel and is woken
	// explicitly by the releasing goroutine — best for long hold times
	// or deep contention where busy-waiting wastes a core.
	LockSleeping
)

// newLocker constructs a fresh Locker of the given kind.
func newLocker(kind LockKind) Locker {
	switch kind {
	case LockTAS:
		return new(tasLock)
	case LockTATAS:
		return new(tatasLock)
	case LockBackoff:
		return new(backoffLock)
	case LockSleeping:
		return newSleepingLock()
	default:
		return new(mutexLock)
	}
}
