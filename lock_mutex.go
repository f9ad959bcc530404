// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

import "sync"

// mutexLock wraps the platform mutex (sync.Mutex). It is the default
// Locker: correct under preemption and safe when a critical section may
// be long (e.g. the admission lock's growth wait).
type mutexLock struct {
	mu sync.Mutex
}

func (l *mutexLock) Lock()   { l.mu.Lock() }
func (l *mutexLock) Unlock() { l.mu.Unlock() }
