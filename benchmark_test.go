// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq_test

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"code.hybscloud.com/cpq"
	"code.hybscloud.com/spin"
)

// =============================================================================
// Single-goroutine baselines
// =============================================================================

func BenchmarkInsertPopMax_SingleOp(b *testing.B) {
	q := cpq.New[int]()

	b.ResetTimer()
	for i := range b.N {
		q.Insert(i, uint64(i))
		q.PopMax()
	}
}

func BenchmarkInsert_Only(b *testing.B) {
	q := cpq.New[int]()

	b.ResetTimer()
	for i := range b.N {
		q.Insert(i, uint64(i))
	}
}

// =============================================================================
// Lock kind variants
// =============================================================================

func BenchmarkInsertPopMax_LockKinds(b *testing.B) {
	kinds := []struct {
		name string
		kind cpq.LockKind
	}{
		{"Platform", cpq.LockPlatform},
		{"TAS", cpq.LockTAS},
		{"TATAS", cpq.LockTATAS},
		{"Backoff", cpq.LockBackoff},
		{"Sleeping", cpq.LockSleeping},
	}

	for _, k := range kinds {
		b.Run(k.name, func(b *testing.B) {
			q := cpq.New[int](cpq.WithNodeLock(k.kind), cpq.WithAdmissionLock(k.kind))
			b.ResetTimer()
			for i := range b.N {
				q.Insert(i, uint64(i))
				q.PopMax()
			}
		})
	}
}

// =============================================================================
// Counter strategy variants
// =============================================================================

func BenchmarkInsert_CounterStrategies(b *testing.B) {
	b.Run("BitReversed", func(b *testing.B) {
		q := cpq.New[int]()
		b.ResetTimer()
		for i := range b.N {
			q.Insert(i, uint64(i))
		}
	})
	b.Run("Linear", func(b *testing.B) {
		q := cpq.New[int](cpq.WithLinearCounter())
		b.ResetTimer()
		for i := range b.N {
			q.Insert(i, uint64(i))
		}
	})
}

// =============================================================================
// Concurrent producer/consumer throughput
// =============================================================================

func benchmarkConcurrent(b *testing.B, inserters, poppers int, opts ...cpq.Option) {
	q := cpq.New[int](opts...)

	opsPerInserter := b.N / inserters
	if opsPerInserter < 1 {
		opsPerInserter = 1
	}

	b.ResetTimer()

	var insertWg, popWg sync.WaitGroup
	done := make(chan struct{})

	for range poppers {
		popWg.Add(1)
		go func() {
			defer popWg.Done()
			sw := spin.Wait{}
			for {
				select {
				case <-done:
					for {
						if _, ok := q.PopMax(); !ok {
							return
						}
					}
				default:
					if _, ok := q.PopMax(); ok {
						sw.Reset()
					} else {
						sw.Once()
					}
				}
			}
		}()
	}

	for id := range inserters {
		insertWg.Add(1)
		go func(id int) {
			defer insertWg.Done()
			base := id * opsPerInserter
			for i := range opsPerInserter {
				q.Insert(base+i, uint64(base+i))
			}
		}(id)
	}

	insertWg.Wait()
	close(done)
	popWg.Wait()
}

func BenchmarkConcurrent_Throughput(b *testing.B) {
	inserters := runtime.GOMAXPROCS(0) / 2
	poppers := runtime.GOMAXPROCS(0) - inserters
	if inserters < 1 {
		inserters = 1
	}
	if poppers < 1 {
		poppers = 1
	}
	benchmarkConcurrent(b, inserters, poppers)
}

func BenchmarkConcurrent_ContentionLevels(b *testing.B) {
	workerCounts := []int{2, 4, 8, 16}
	for _, workers := range workerCounts {
		b.Run(fmt.Sprintf("Workers%d", workers), func(b *testing.B) {
			inserters := workers / 2
			poppers := workers - inserters
			if inserters < 1 {
				inserters = 1
			}
			if poppers < 1 {
				poppers = 1
			}
			benchmarkConcurrent(b, inserters, poppers)
		})
	}
}

func BenchmarkConcurrent_LockKinds(b *testing.B) {
	kinds := []struct {
		name string
		kind cpq.LockKind
	}{
		{"Platform", cpq.LockPlatform},
		{"TAS", cpq.LockTAS},
		{"TATAS", cpq.LockTATAS},
		{"Backoff", cpq.LockBackoff},
		{"Sleeping", cpq.LockSleeping},
	}

	for _, k := range kinds {
		b.Run(k.name, func(b *testing.B) {
			benchmarkConcurrent(b, 4, 4, cpq.WithNodeLock(k.kind), cpq.WithAdmissionLock(k.kind))
		})
	}
}

// =============================================================================
// Initial capacity variants
// =============================================================================

func BenchmarkInsert_InitialLevels(b *testing.B) {
	levels := []int{0, 4, 8, 12, 16}
	for _, lvl := range levels {
		b.Run(fmt.Sprintf("Levels%d", lvl), func(b *testing.B) {
			q := cpq.New[int](cpq.WithInitialLevels(lvl))
			b.ResetTimer()
			for i := range b.N {
				q.Insert(i, uint64(i))
			}
		})
	}
}
