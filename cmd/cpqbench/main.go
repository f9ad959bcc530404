// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command cpqbench runs insert-only, pop-only, and mixed workloads against
// a CPQ over a range of concurrency levels and reports mean and standard
// deviation of the elapsed wall time per repetition, one line per thread
// count.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"code.hybscloud.com/cpq"
)

func main() {
	var (
		problemSize = flag.Int("problem-size", 1<<15, "number of operations performed by the benchmarked phase")
		initSize    = flag.Int("init-size", 1<<17, "number of elements preloaded before timing starts")
		reps        = flag.Int("reps", 2, "repetitions averaged per thread count")
		maxThreads  = flag.Int("max-threads", 7, "largest thread count to benchmark (odd counts from 1)")
		seed        = flag.Int64("seed", 1, "RNG seed; fixed so runs are comparable")
		lockKind    = flag.String("lock", "platform", "node/admission lock kind: platform, tas, tatas, backoff, sleeping")
		linear      = flag.Bool("linear-counter", false, "use the linear slot counter instead of bit-reversed")
	)
	flag.Parse()

	kind, err := parseLockKind(*lockKind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opts := []cpq.Option{cpq.WithNodeLock(kind), cpq.WithAdmissionLock(kind)}
	if *linear {
		opts = append(opts, cpq.WithLinearCounter())
	}

	cfg := benchConfig{
		problemSize: *problemSize,
		initSize:    *initSize,
		reps:        *reps,
		maxThreads:  *maxThreads,
		seed:        *seed,
		opts:        opts,
	}

	fmt.Printf("insert-only, lock=%s, linear-counter=%v\n", *lockKind, *linear)
	fmt.Printf("%20s%20s%20s\n", "threads", "mean(s)", "stddev(s)")
	runPhase(cfg, insertPhase)

	fmt.Printf("\npop-only, lock=%s, linear-counter=%v\n", *lockKind, *linear)
	fmt.Printf("%20s%20s%20s\n", "threads", "mean(s)", "stddev(s)")
	runPhase(cfg, popPhase)

	fmt.Printf("\nmixed, lock=%s, linear-counter=%v\n", *lockKind, *linear)
	fmt.Printf("%20s%20s%20s\n", "threads", "mean(s)", "stddev(s)")
	runPhase(cfg, mixedPhase)
}

func parseLockKind(s string) (cpq.LockKind, error) {
	switch s {
	case "platform":
		return cpq.LockPlatform, nil
	case "tas":
		return cpq.LockTAS, nil
	case "tatas":
		return cpq.LockTATAS, nil
	case "backoff":
		return cpq.LockBackoff, nil
	case "sleeping":
		return cpq.LockSleeping, nil
	default:
		return cpq.LockPlatform, fmt.Errorf("cpqbench: unknown lock kind %q", s)
	}
}

type benchConfig struct {
	problemSize int
	initSize    int
	reps        int
	maxThreads  int
	seed        int64
	opts        []cpq.Option
}

type phaseFunc func(q *cpq.CPQ[uint64], nthreads, problemSize int, rng *rand.Rand)

func runPhase(cfg benchConfig, phase phaseFunc) {
	for nthreads := 1; nthreads <= cfg.maxThreads; nthreads += 2 {
		var sum, sumSq float64

		for n := 0; n < cfg.reps; n++ {
			q := cpq.New[uint64](cfg.opts...)
			rng := rand.New(rand.NewSource(cfg.seed))
			for i := 0; i < cfg.initSize; i++ {
				p := rng.Uint64()
				q.Insert(p, p)
			}

			start := time.Now()
			phase(q, nthreads, cfg.problemSize, rng)
			elapsed := time.Since(start).Seconds()

			sum += elapsed
			sumSq += elapsed * elapsed
		}

		mean := sum / float64(cfg.reps)
		var stddev float64
		if cfg.reps > 1 {
			variance := sumSq/float64(cfg.reps) - mean*mean
			if variance > 0 {
				stddev = math.Sqrt(variance * float64(cfg.reps) / float64(cfg.reps-1))
			}
		}

		fmt.Printf("%20d%20.8f%20.8f\n", nthreads, mean, stddev)
	}
}

func insertPhase(q *cpq.CPQ[uint64], nthreads, problemSize int, rng *rand.Rand) {
	parallelFor(nthreads, problemSize, rng.Int63(), func(worker *rand.Rand, i int) {
		p := worker.Uint64()
		q.Insert(p, p)
	})
}

func popPhase(q *cpq.CPQ[uint64], nthreads, problemSize int, rng *rand.Rand) {
	parallelFor(nthreads, problemSize, rng.Int63(), func(worker *rand.Rand, i int) {
		q.PopMax()
	})
}

func mixedPhase(q *cpq.CPQ[uint64], nthreads, problemSize int, rng *rand.Rand) {
	parallelFor(nthreads, problemSize, rng.Int63(), func(worker *rand.Rand, i int) {
		if worker.Intn(2) == 0 {
			p := worker.Uint64()
			q.Insert(p, p)
		} else {
			q.PopMax()
		}
	})
}

// parallelFor splits n iterations evenly across nthreads goroutines, each
// with its own per-worker RNG seeded deterministically from base.
func parallelFor(nthreads, n int, base int64, fn func(worker *rand.Rand, i int)) {
	var wg sync.WaitGroup

	for w := 0; w < nthreads; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker := rand.New(rand.NewSource(base + int64(w) + 1))
			start := w * n / nthreads
			end := (w + 1) * n / nthreads
			for i := start; i < end; i++ {
				fn(worker, i)
			}
		}()
	}
	wg.Wait()
}
