// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo

// defaultRecycle is the number of drained blocks kept for reuse.
// Two covers the steady state where the consumer trails the producer by
// less than a block.
const defaultRecycle = 2

// Options configures queue creation.
type Options struct {
	// Per-block element capacity. Zero selects the sizing policy.
	blockSize int

	// Depth of the drained-block recycle ring. Zero disables recycling.
	recycle int

	// Consumer skips publishing head when set.
	untrackedSize bool
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Defaults: block size from the element size, size tracking on
//	q := fifo.Build[Event](fifo.New())
//
//	// Small blocks, deeper recycling, no cross-goroutine Size
//	q := fifo.Build[Event](fifo.New().BlockSize(16).Recycle(8).UntrackedSize())
type Builder struct {
	opts Options
}

// New creates a queue builder with default options.
func New() *Builder {
	return &Builder{opts: Options{recycle: defaultRecycle}}
}

// BlockSize overrides the per-block element capacity chosen by the
// sizing policy. The value rounds up to the next power of 2.
//
// Panics if n < 2.
func (b *Builder) BlockSize(n int) *Builder {
	if n < 2 {
		panic("fifo: block size must be >= 2")
	}
	b.opts.blockSize = roundToPow2(n)
	return b
}

// Recycle sets how many drained blocks are handed back from the consumer
// to the producer instead of being left to the garbage collector.
// The depth rounds up to the next power of 2; zero disables recycling.
//
// Panics if depth < 0.
func (b *Builder) Recycle(depth int) *Builder {
	if depth < 0 {
		panic("fifo: recycle depth must be >= 0")
	}
	if depth == 0 {
		b.opts.recycle = 0
		return b
	}
	b.opts.recycle = roundToPow2(depth)
	return b
}

// UntrackedSize declares that Size and Empty are only called from the
// consumer goroutine. The consumer then skips publishing its head
// counter, saving one store per pop.
func (b *Builder) UntrackedSize() *Builder {
	b.opts.untrackedSize = true
	return b
}

// Build creates a Queue[T] from the builder's options.
//
// Block size, when not set explicitly, follows the element size:
//
//	size <= 32 bytes   → 128 elements per block
//	size <= 128 bytes  → 32 elements per block
//	size <  1024 bytes → 4 elements per block
//	otherwise          → 2 elements per block
func Build[T any](b *Builder) *Queue[T] {
	n := b.opts.blockSize
	if n == 0 {
		n = blockCap[T]()
	}
	q := &Queue[T]{
		store:     newBlockStore[T](n, b.opts.recycle),
		mask:      uint64(n - 1),
		trackSize: !b.opts.untrackedSize,
	}
	q.init()
	return q
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
