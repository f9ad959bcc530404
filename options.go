// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

// config holds the knobs a CPQ is constructed with. Unlike the teacher
// library's Builder, CPQ has no producer/consumer cardinality axis to
// pick an algorithm from — there is exactly one algorithm, so config is
// assembled via the stdlib functional-options idiom instead of a fluent
// Builder.
type config struct {
	nodeLock      LockKind
	admissionLock LockKind
	linear        bool
	initialLevels int
}

func defaultConfig() config {
	return config{
		nodeLock:      LockPlatform,
		admissionLock: LockPlatform,
	}
}

// Option configures a CPQ at construction time. See New.
type Option func(*config)

// WithNodeLock selects the Locker implementation used by every heap
// slot. The default is LockPlatform. Lock choice is a tuning knob only —
// it has no effect on the queue's observable behavior.
func WithNodeLock(kind LockKind) Option {
	return func(c *config) { c.nodeLock = kind }
}

// WithAdmissionLock selects the Locker implementation used for the
// admission lock that serializes counter mutation and slot handoff. The
// default is LockPlatform, which is almost always the right choice since
// the admission lock's critical section can include the growth wait.
func WithAdmissionLock(kind LockKind) Option {
	return func(c *config) { c.admissionLock = kind }
}

// WithLinearCounter selects the plain left-to-right slotCounter instead
// of the default bit-reversed one. It exists as a documented contention
// baseline for benchmarking (see counter.go) and is never the right
// choice for a production workload with concurrent inserts.
func WithLinearCounter() Option {
	return func(c *config) { c.linear = true }
}

// WithInitialLevels pre-grows a freshly constructed CPQ to hold the first
// n tree levels (2^n - 1 usable slots) before any Insert, so that early
// concurrent inserts are not serialized behind the growth protocol's
// quiescence wait. It has no effect on correctness: an equivalent CPQ
// built without this option converges to the same state after enough
// inserts trigger the same doublings.
func WithInitialLevels(n int) Option {
	return func(c *config) { c.initialLevels = n }
}

// pad is cache-line padding to prevent false sharing between hot atomic
// fields in the CPQ core (the active-goroutine counter sits next to the
// admission lock and the owner-id allocator, all written on every
// operation).
type pad [64]byte
