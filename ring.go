// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

// ring is a bounded single-producer single-consumer ring buffer.
//
// Lamport's ring with cached opposite indices: each side re-reads the
// other side's counter only when its cached view says the ring is
// full (put) or empty (take).
//
// The block store runs it against the queue's direction: the queue
// consumer puts drained blocks, the queue producer takes them.
type ring[T any] struct {
	_          pad
	head       counter // taker advances
	_          pad
	cachedTail uint64 // taker's view of tail
	_          pad
	tail       counter // putter advances
	_          pad
	cachedHead uint64 // putter's view of head
	_          pad
	slots      []T
	mask       uint64
}

func newRing[T any](depth int) *ring[T] {
	n := uint64(roundToPow2(depth))
	return &ring[T]{
		slots: make([]T, n),
		mask:  n - 1,
	}
}

// put stores v (putter only). Reports false if the ring is full.
func (r *ring[T]) put(v T) bool {
	tail := r.tail.LoadRelaxed()
	if tail-r.cachedHead > r.mask {
		r.cachedHead = r.head.LoadAcquire()
		if tail-r.cachedHead > r.mask {
			return false
		}
	}

	r.slots[tail&r.mask] = v
	r.tail.StoreRelease(tail + 1)
	return true
}

// take removes the oldest value (taker only). Reports false if the ring
// is empty.
func (r *ring[T]) take() (T, bool) {
	var zero T
	head := r.head.LoadRelaxed()
	if head >= r.cachedTail {
		r.cachedTail = r.tail.LoadAcquire()
		if head >= r.cachedTail {
			return zero, false
		}
	}

	v := r.slots[head&r.mask]
	r.slots[head&r.mask] = zero
	r.head.StoreRelease(head + 1)
	return v, true
}

func (r *ring[T]) capacity() int {
	return int(r.mask + 1)
}
