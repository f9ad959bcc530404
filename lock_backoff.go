// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// backoffMaxSpins caps the local spin budget a failed backoffLock attempt
// will burn before retrying the test-and-set, so a long-stalled holder
// doesn't push every waiter into an ever-growing spin.
const backoffMaxSpins = 1024

// backoffLock is TAS with exponential backoff: each failed attempt
// doubles a local delay counter and spends that many spin.Wait ticks
// before the word is tested again.
type backoffLock struct {
	word atomix.Uint32
}

func (l *backoffLock) Lock() {
	delay := 1
	for !l.word.CompareAndSwapAcqRel(0, 1) {
		sw := spin.Wait{}
		for i := 0; i < delay; i++ {
			sw.Once()
		}
		if delay < backoffMaxSpins {
			delay *= 2
		}
	}
}

func (l *backoffLock) Unlock() {
	l.word.StoreRelease(0)
}
