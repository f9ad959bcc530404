// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpq

import "errors"

// ErrClosed indicates Drain observed the queue already in a terminal
// drained state from an earlier call.
//
// ErrClosed is a control flow signal, not a failure of the core protocol.
// Insert and PopMax never return an error — PopMax reports absence through
// its boolean result, exactly as specified; only the supplemental Drain
// helper has an error return at all.
var ErrClosed = errors.New("cpq: queue already drained")

// IsClosed reports whether err indicates the queue was already drained.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
