// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package fifo

// RaceEnabled is true when the race detector is active.
// The shared counters are then backed by sync/atomic so that the
// detector sees the ordering of block slots and block links.
const RaceEnabled = true
