// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import "unsafe"

// block is a fixed run of element slots linked to its successor.
//
// next is a plain field. The producer writes it before the tail release
// store that publishes the first element of the successor, and the
// consumer reads it only after an acquire load that observed that store.
type block[T any] struct {
	elems []T
	next  *block[T]
}

// blockStore hands out and takes back blocks of a fixed capacity.
//
// acquire runs on the producer goroutine, release on the consumer
// goroutine. Released blocks travel back to the producer through a
// bounded ring; overflow is left to the garbage collector.
type blockStore[T any] struct {
	size int
	free *ring[*block[T]] // nil when recycling is disabled
}

func newBlockStore[T any](size, recycle int) blockStore[T] {
	s := blockStore[T]{size: size}
	if recycle > 0 {
		s.free = newRing[*block[T]](recycle)
	}
	return s
}

// acquire returns an empty block with no successor (producer only).
func (s *blockStore[T]) acquire() *block[T] {
	if s.free != nil {
		if b, ok := s.free.take(); ok {
			return b
		}
	}
	return &block[T]{elems: make([]T, s.size)}
}

// release takes back a drained block (consumer only).
// Every slot of b must already hold the zero value.
func (s *blockStore[T]) release(b *block[T]) {
	b.next = nil
	if s.free != nil {
		s.free.put(b)
	}
}

// reset drops every recycled block. Not safe for concurrent use.
func (s *blockStore[T]) reset() {
	if s.free != nil {
		s.free = newRing[*block[T]](s.free.capacity())
	}
}

// blockCap returns the sizing policy's block capacity for T.
func blockCap[T any]() int {
	var zero T
	return blockCapFor(unsafe.Sizeof(zero))
}

// blockCapFor maps an element size in bytes to a power-of-two block
// capacity. Small elements are batched so that block allocation stays
// rare relative to pushes; large elements are dominated by the copy
// itself and use short blocks to bound the memory a partially filled
// block wastes.
func blockCapFor(size uintptr) int {
	switch {
	case size <= 32:
		return 128
	case size <= 128:
		return 32
	case size < 1024:
		return 4
	default:
		return 2
	}
}
