// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

import "code.hybscloud.com/atomix"

// tatasLock is test-and-test-and-set: the busy wait reads the word with a
// relaxed load until it observes free, and only then attempts the atomic
// test-and-set. Under contention this keeps most of the spinning local to
// each caller's cache, only touching the bus once a CAS is actually worth
// attempting.
type tatasLock struct {
	word atomix.Uint32
}

func (l *tatasLock) Lock() {
	for {
		for l.word.LoadRelaxed() != 0 {
		}
		if l.word.CompareAndSwapAcqRel(0, 1) {
			return
		}
	}
}

func (l *tatasLock) Unlock() {
	l.word.StoreRelease(0)
}
