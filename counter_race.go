// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package fifo

import "sync/atomic"

// counter is the race-detector build of the shared position counter.
//
// atomix compiles relaxed, acquire and release accesses to plain loads and
// stores on some architectures, which the detector reports as races and
// which do not order the plain slot writes for it. sync/atomic operations
// are synchronizing to the detector, so every ordering is upgraded to
// sequentially consistent here.
type counter struct {
	v atomic.Uint64
}

func (c *counter) LoadRelaxed() uint64 { return c.v.Load() }

func (c *counter) LoadAcquire() uint64 { return c.v.Load() }

func (c *counter) StoreRelaxed(val uint64) { c.v.Store(val) }

func (c *counter) StoreRelease(val uint64) { c.v.Store(val) }
