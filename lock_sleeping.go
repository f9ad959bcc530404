// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

const (
	lockFree      uint32 = 0
	lockHeld      uint32 = 1
	lockContended uint32 = 2
)

// sleepingLockLocalSpins is the number of free→held attempts Lock makes
// before it gives up spinning and parks the calling goroutine.
const sleepingLockLocalSpins = 64

// sleepingLockWakeSpins is how long Unlock spins locally, after resetting
// a contended word to free, before explicitly waking a parked waiter —
// giving a goroutine that is already running a chance to grab the lock
// first and avoid a wakeup entirely.
const sleepingLockWakeSpins = 32

// sleepingLock is a three-state lock: free, held, or contended. Acquire
// spins locally for a bounded number of iterations; if that fails it
// marks the word contended and parks on a channel, woken only by an
// Unlock that observed contention. This is the channel-based substitute
// for the kernel futex described in the original design: Go exposes no
// portable "park this goroutine on a word" primitive to user code, so a
// per-lock wake channel plays the same role — sent to only when a waiter
// is known to exist, never polled.
//
// The slow path follows the corrected three-state futex mutex (Drepper,
// "Futexes Are Tricky"): once a goroutine has ever had to wait, it
// re-marks the word contended on every acquisition, not just held, until
// it acquires the word directly from free. That is what makes the
// following Unlock's fast path safe — CompareAndSwapAcqRel(held, free)
// only succeeds when the word was never anything but held, i.e. nobody
// is or was waiting on it. A naive version that reacquires straight into
// held loses this property and strands any goroutine still parked on
// wake.
type sleepingLock struct {
	word atomix.Uint32
	wake chan struct{}
}

func newSleepingLock() *sleepingLock {
	return &sleepingLock{wake: make(chan struct{}, 1)}
}

func (l *sleepingLock) Lock() {
	for i := 0; i < sleepingLockLocalSpins; i++ {
		if l.word.CompareAndSwapAcqRel(lockFree, lockHeld) {
			return
		}
	}

	for {
		if l.exchangeContended() == lockFree {
			return
		}
		<-l.wake
	}
}

// exchangeContended atomically sets the word to lockContended and
// returns the value it held immediately before, emulating a hardware
// exchange with the compare-and-swap primitive atomix exposes. Called on
// every slow-path attempt so that a goroutine which has ever waited
// leaves the word contended whether or not it just acquired the lock —
// never held — so a subsequent Unlock can't mistake "I'm the only one
// here" for "someone is still parked".
func (l *sleepingLock) exchangeContended() uint32 {
	for {
		old := l.word.LoadAcquire()
		if old == lockContended {
			return old
		}
		if l.word.CompareAndSwapAcqRel(old, lockContended) {
			return old
		}
	}
}

func (l *sleepingLock) Unlock() {
	if l.word.CompareAndSwapAcqRel(lockHeld, lockFree) {
		return
	}

	// The word was contended: a parked waiter (or one about to park) is
	// relying on an explicit wake, not on observing lockFree on its own.
	l.word.StoreRelease(lockFree)

	sw := spin.Wait{}
	for i := 0; i < sleepingLockWakeSpins; i++ {
		sw.Once()
	}

	select {
	case l.wake <- struct{}{}:
	default:
	}
}
