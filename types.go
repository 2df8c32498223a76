// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

// Producer is the push side of a queue.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
//
// Example:
//
//	func emit(p fifo.Producer[Event], ev Event) {
//	    _ = p.Enqueue(&ev) // never fails for *fifo.Queue
//	}
type Producer[T any] interface {
	// Enqueue appends an element to the queue.
	// Only one goroutine may call Enqueue on a given queue.
	Enqueue(elem *T) error
}

// Consumer is the pop side of a queue.
//
// The element is returned by value and the slot it occupied is reset to
// the zero value, releasing any references it held.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	// Only one goroutine may call Dequeue on a given queue.
	Dequeue() (T, error)
}

// Monitor reports an approximate queue depth.
//
// The value is a snapshot: the other side may change it before the
// caller looks at it. Use it for metrics and tuning, not for deciding
// whether a pop will succeed.
type Monitor interface {
	Size() int
	Empty() bool
}

// Channel is the combined interface implemented by [Queue].
type Channel[T any] interface {
	Producer[T]
	Consumer[T]
	Monitor
}

var _ Channel[int] = (*Queue[int])(nil)
