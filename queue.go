// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

import "iter"

// Queue is an unbounded single-producer single-consumer FIFO queue.
//
// Elements live in a singly linked chain of fixed-capacity blocks. The
// producer appends at the tail block and links a new block when it is
// full; the consumer drains the head block and hands it back to the block
// store once it moves past it.
//
// The only synchronization is the tail counter: the producer publishes
// each element with a release store, and the consumer observes it with an
// acquire load that also makes any newly linked block visible. The
// consumer caches the last tail it saw and touches the shared counter
// only when the cache says the queue is empty.
//
// Memory: one block of N elements plus whatever the consumer has not
// drained yet, rounded up to whole blocks.
type Queue[T any] struct {
	_         pad
	tail      counter   // Next position to write; producer stores
	tailBlock *block[T] // Producer only
	spare     *block[T] // Producer only; successor not yet linked
	_         pad
	head      uint64    // Next position to read; consumer only
	tailCache uint64    // Consumer's view of tail
	headBlock *block[T] // Consumer only
	_         pad
	headPub   counter // head as seen by Size from the producer side
	_         pad
	store     blockStore[T]
	mask      uint64
	trackSize bool
}

// NewQueue creates an empty queue with default options.
// Block size follows the sizing policy described at [Build].
func NewQueue[T any]() *Queue[T] {
	return Build[T](New())
}

func (q *Queue[T]) init() {
	b := q.store.acquire()
	q.tailBlock = b
	q.headBlock = b
	q.head = 0
	q.tailCache = 0
	q.headPub.StoreRelaxed(0)
	q.tail.StoreRelease(0)
}

// Push appends elem to the queue (producer only).
// Push never fails; a new block is allocated when the tail block is full.
func (q *Queue[T]) Push(elem T) {
	tail := q.tail.LoadRelaxed()
	b, idx := q.reserve(tail)
	b.elems[idx] = elem
	q.commit(b, tail)
}

// Emplace appends an element built in place by init (producer only).
//
// init receives a pointer to a slot holding the zero value of T and must
// not retain it. The element is published only after init returns; if
// init panics, the slot is reset to the zero value and nothing is
// published.
func (q *Queue[T]) Emplace(init func(elem *T)) {
	tail := q.tail.LoadRelaxed()
	b, idx := q.reserve(tail)
	slot := &b.elems[idx]
	committed := false
	defer func() {
		if !committed {
			var zero T
			*slot = zero
		}
	}()
	init(slot)
	committed = true
	q.commit(b, tail)
}

// Enqueue appends *elem to the queue (producer only).
// Always returns nil; it exists to satisfy [Producer].
func (q *Queue[T]) Enqueue(elem *T) error {
	q.Push(*elem)
	return nil
}

// reserve returns the block and slot index for position tail. When the
// tail block is full, the block returned is a successor that commit links.
func (q *Queue[T]) reserve(tail uint64) (*block[T], uint64) {
	idx := tail & q.mask
	if idx == 0 && tail != 0 {
		if q.spare == nil {
			q.spare = q.store.acquire()
		}
		return q.spare, idx
	}
	return q.tailBlock, idx
}

// commit links b if it is a new tail block and publishes position tail.
func (q *Queue[T]) commit(b *block[T], tail uint64) {
	if b != q.tailBlock {
		// Plain store: the release below orders it for the consumer.
		q.tailBlock.next = b
		q.tailBlock = b
		q.spare = nil
	}
	q.tail.StoreRelease(tail + 1)
}

// visible reports whether an element is published at head.
func (q *Queue[T]) visible() bool {
	if q.head != q.tailCache {
		return true
	}
	q.tailCache = q.tail.LoadAcquire()
	return q.head != q.tailCache
}

// advance returns the slot at head and moves head past it.
// The caller must have checked visible.
func (q *Queue[T]) advance() *T {
	head := q.head
	idx := head & q.mask
	if idx == 0 && head != 0 {
		drained := q.headBlock
		q.headBlock = drained.next
		q.store.release(drained)
	}
	q.head = head + 1
	if q.trackSize {
		q.headPub.StoreRelaxed(head + 1)
	}
	return &q.headBlock.elems[idx]
}

// Pop removes the oldest element and discards it (consumer only).
// Returns false if the queue is empty.
func (q *Queue[T]) Pop() bool {
	if !q.visible() {
		return false
	}
	var zero T
	*q.advance() = zero
	return true
}

// PopInto removes the oldest element and stores it in *dst
// (consumer only). Returns false, leaving *dst untouched, if the queue
// is empty.
func (q *Queue[T]) PopInto(dst *T) bool {
	if !q.visible() {
		return false
	}
	slot := q.advance()
	*dst = *slot
	var zero T
	*slot = zero
	return true
}

// Dequeue removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	var elem T
	if !q.PopInto(&elem) {
		return elem, ErrWouldBlock
	}
	return elem, nil
}

// PopBatch moves up to len(dst) elements into dst in FIFO order
// (consumer only) and returns how many it moved.
func (q *Queue[T]) PopBatch(dst []T) int {
	for i := range dst {
		if !q.PopInto(&dst[i]) {
			return i
		}
	}
	return len(dst)
}

// Drain returns an iterator that pops elements until the queue is
// observed empty (consumer only). Elements pushed while the iteration
// runs are included if the consumer sees them before finding the queue
// empty. Stopping the iteration early leaves the rest queued.
//
//	for ev := range q.Drain() {
//	    handle(ev)
//	}
func (q *Queue[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		var elem T
		for q.PopInto(&elem) {
			if !yield(elem) {
				return
			}
		}
	}
}

// Front returns a pointer to the oldest element without removing it
// (consumer only). The pointer is valid until the next pop.
//
// Panics if the queue is empty; check with [Queue.Empty] or use
// [Queue.Peek] when emptiness is not known.
func (q *Queue[T]) Front() *T {
	if !q.visible() {
		panic("fifo: Front on empty queue")
	}
	return q.front()
}

// Peek returns a copy of the oldest element without removing it
// (consumer only). Returns (zero-value, ErrWouldBlock) if the queue is
// empty.
func (q *Queue[T]) Peek() (T, error) {
	if !q.visible() {
		var zero T
		return zero, ErrWouldBlock
	}
	return *q.front(), nil
}

func (q *Queue[T]) front() *T {
	idx := q.head & q.mask
	b := q.headBlock
	if idx == 0 && q.head != 0 {
		b = b.next
	}
	return &b.elems[idx]
}

// Size returns the number of queued elements.
//
// The value is approximate: the other side may push or pop concurrently.
// With size tracking on (the default) Size may be called from either
// side; a queue built with [Builder.UntrackedSize] answers correctly only
// on the consumer goroutine.
func (q *Queue[T]) Size() int {
	if !q.trackSize {
		return int(q.tail.LoadRelaxed() - q.head)
	}
	head := q.headPub.LoadRelaxed()
	tail := q.tail.LoadRelaxed()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Empty reports whether Size is zero.
func (q *Queue[T]) Empty() bool {
	return q.Size() == 0
}

// Clear drops every queued element and returns the queue to its
// freshly constructed state, releasing all blocks.
//
// Clear is not safe for concurrent use: neither the producer nor the
// consumer may touch the queue while it runs.
func (q *Queue[T]) Clear() {
	for q.Pop() {
	}
	q.spare = nil
	q.store.reset()
	q.init()
}

// BlockSize returns the number of elements per block.
func (q *Queue[T]) BlockSize() int {
	return int(q.mask + 1)
}
