// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fifo provides an unbounded lock-free FIFO queue for exactly one
// producer goroutine and one consumer goroutine.
//
// The queue is a hand-off channel between two fixed goroutines, such as an
// emulation loop and a worker, where a mutex or a Go channel would add
// latency or jitter. Neither side ever blocks: Push always succeeds, and
// Pop returns false when nothing is published yet.
//
// # Quick Start
//
//	q := fifo.NewQueue[Event]()
//
//	// Producer goroutine
//	q.Push(ev)
//
//	// Consumer goroutine
//	var ev Event
//	if q.PopInto(&ev) {
//	    handle(ev)
//	}
//
// Builder API for non-default options:
//
//	q := fifo.Build[Event](fifo.New().BlockSize(64).Recycle(8))
//
// # Operations
//
// Producer side:
//
//	q.Push(v)                        // copy v in
//	q.Emplace(func(e *Event) { ... }) // build the element in its slot
//	q.Enqueue(&v)                    // Producer[T] form, always nil
//
// Consumer side:
//
//	q.Pop()          // discard the oldest element
//	q.PopInto(&v)    // move the oldest element into v
//	q.Dequeue()      // Consumer[T] form, ErrWouldBlock when empty
//	q.PopBatch(buf)  // up to len(buf) elements
//	q.Drain()        // iter.Seq over everything currently visible
//	q.Front()        // pointer to the oldest element, panics when empty
//	q.Peek()         // copy of the oldest element, ErrWouldBlock when empty
//
// Either side:
//
//	q.Size(), q.Empty() // approximate depth, for monitoring
//
// Neither side may run concurrently with:
//
//	q.Clear() // drop everything, back to the constructed state
//
// # Polling
//
// The queue has no waiting, timeout or cancellation of its own. A consumer
// that has nothing else to do polls with a backoff:
//
//	go func() { // Consumer
//	    backoff := iox.Backoff{}
//	    var ev Event
//	    for {
//	        if !q.PopInto(&ev) {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(ev)
//	    }
//	}()
//
// # Block Layout
//
// Elements are stored in blocks of N slots linked into a chain. N is a
// power of 2 chosen from the element size so that block allocation stays
// rare for small elements and partially filled blocks stay cheap for large
// ones:
//
//	size <= 32 bytes   → N = 128
//	size <= 128 bytes  → N = 32
//	size <  1024 bytes → N = 4
//	otherwise          → N = 2
//
// Positions are 64-bit counters starting at 0; position p lives in slot
// p & (N-1). The producer links a new block when it is about to write
// slot 0 of any block but the first. The consumer steps to the successor
// at the same boundary and returns the drained block to the block store,
// which hands up to Recycle blocks back to the producer through a small
// SPSC ring before falling back to the garbage collector.
//
// Popped slots are reset to the zero value so the queue never keeps a
// reference to an element the consumer has taken.
//
// # Memory Ordering
//
// The producer publishes every element with a release store of the tail
// counter. The consumer refreshes its cached tail with an acquire load
// only when the cache says the queue is empty. That one acquire/release
// pair orders the element's slot write and any new block link, both of
// which are plain stores.
//
// Size loads counters with relaxed ordering and is not linearizable.
//
// # Misuse
//
// Using a queue from more than one producer or more than one consumer
// goroutine, or calling Clear while either side is active, corrupts the
// queue. These are not checked. Front on an empty queue is checked and
// panics.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before relationships that
// atomix acquire-release operations establish between separate variables.
// Block slots are plain memory ordered through the tail counter, so under
// the race build tag the shared counters switch to sync/atomic, which the
// detector understands. Concurrent tests run unchanged with -race; only
// the ordering of the counters differs from the regular build.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering and [code.hybscloud.com/iox] for semantic
// errors.
package fifo
