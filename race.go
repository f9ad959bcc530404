// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package cpq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip the heaviest concurrent stress tests, whose
// runtime under the race detector's instrumentation would otherwise blow
// test timeouts without adding coverage beyond the smaller variants.
const RaceEnabled = true
