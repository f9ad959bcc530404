// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cpq provides a concurrent priority queue: a fine-grained,
// lock-per-node binary max-heap that many goroutines can Insert into and
// PopMax from at once.
//
// # Consistency model
//
// CPQ is not linearizable at the operation level. A PopMax is not
// guaranteed to return the global maximum at the moment of the call if
// other Inserts have not yet finished bubbling their element up. What CPQ
// guarantees is quiescent correctness: once every in-flight Insert and
// PopMax has returned, the heap is a correct max-heap — every non-empty
// slot's priority is no greater than its parent's, and the occupied
// slots are exactly the first Size() slots in the order the slot counter
// hands them out. Every level above the bottom one is full; the default
// counter fills the bottom level in bit-reversed order, so its occupied
// slots are not a contiguous run of indices.
//
// This trades strict linearizability for a simple per-node locking
// protocol. It is not lock-free or wait-free. There is no decrease-key,
// no removal by key, no iteration, and no persistence.
//
// # Quick start
//
//	q := cpq.New[string]()
//
//	q.Insert("low", 1)
//	q.Insert("high", 9)
//	q.Insert("mid", 5)
//
//	v, ok := q.PopMax() // ("high", true)
//
// # Concurrent use
//
//	q := cpq.New[Job](cpq.WithNodeLock(cpq.LockTATAS))
//
//	var wg sync.WaitGroup
//	for range numWorkers {
//	    wg.Add(1)
//	    go func() {
//	        defer wg.Done()
//	        for job := range submissions {
//	            q.Insert(job, job.Priority)
//	        }
//	    }()
//	}
//
//	for range numConsumers {
//	    go func() {
//	        for {
//	            job, ok := q.PopMax()
//	            if !ok {
//	                continue // queue was empty at admission time; retry
//	            }
//	            job.Run()
//	        }
//	    }()
//	}
//
// # Lock selection
//
// Every Node, and the admission lock that serializes slot assignment, use
// a Locker chosen at construction time (WithNodeLock, WithAdmissionLock):
//
//	LockPlatform  - sync.Mutex, the default. Safe if a goroutine may be
//	                preempted while holding the lock.
//	LockTAS       - busy-loop test-and-set.
//	LockTATAS     - test-and-test-and-set, less cache traffic under
//	                contention than LockTAS.
//	LockBackoff   - TAS with exponential local backoff.
//	LockSleeping  - bounded local spin, then parks and is woken
//	                explicitly on release. Best when contention is high
//	                or hold times are unpredictable.
//
// The choice affects throughput under contention, never correctness.
package cpq
