// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

import "code.hybscloud.com/atomix"

// tasLock busy-loops a single atomic test-and-set word.
//
// Every failed attempt retries the same atomic instruction, so under
// contention the word bounces between caches on every iteration. TATAS
// (tatasLock) or backoffLock reduce that traffic; tasLock is the baseline
// they are measured against.
type tasLock struct {
	word atomix.Uint32
}

func (l *tasLock) Lock() {
	for !l.word.CompareAndSwapAcqRel(0, 1) {
	}
}

func (l *tasLock) Unlock() {
	l.word.StoreRelease(0)
}
