// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package handoff measures producer-to-consumer hand-off through a
// [fifo.Queue] and verifies that every element arrives once and in order.
package handoff

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/fifo"
	"code.hybscloud.com/spin"
)

// ErrOutOfOrder is returned when the consumer receives a sequence number
// other than the next one pushed.
var ErrOutOfOrder = errors.New("handoff: element out of order")

// sizeSampleMask controls how often the consumer samples queue depth.
const sizeSampleMask = 1<<10 - 1

// Config describes one hand-off run.
type Config struct {
	// Messages is the number of elements pushed and popped.
	Messages int
	// BlockSize overrides the queue's block capacity; 0 keeps the
	// sizing policy. Other values below 2 are rejected.
	BlockSize int
	// Recycle sets the block recycle depth; 0 keeps the default and a
	// negative value disables recycling.
	Recycle int
}

func (c Config) builder() *fifo.Builder {
	b := fifo.New()
	if c.BlockSize > 0 {
		b.BlockSize(c.BlockSize)
	}
	switch {
	case c.Recycle < 0:
		b.Recycle(0)
	case c.Recycle > 0:
		b.Recycle(c.Recycle)
	}
	return b
}

// Result reports one hand-off run.
type Result struct {
	Messages   int
	BlockSize  int
	Elapsed    time.Duration
	Throughput float64 // messages per second
	MaxSize    int     // largest sampled queue depth
}

// Run pushes gen(0) through gen(Messages-1) from a producer goroutine and
// pops them on the calling goroutine, spinning while the queue is empty.
// seq extracts the sequence number gen stored in an element.
func Run[T any](cfg Config, gen func(seq uint64) T, seq func(elem *T) uint64) (Result, error) {
	if cfg.Messages <= 0 {
		return Result{}, fmt.Errorf("handoff: messages must be > 0, got %d", cfg.Messages)
	}
	if cfg.BlockSize < 0 || cfg.BlockSize == 1 {
		return Result{}, fmt.Errorf("handoff: block size must be 0 or >= 2, got %d", cfg.BlockSize)
	}

	q := fifo.Build[T](cfg.builder())
	n := uint64(cfg.Messages)

	var wg sync.WaitGroup
	defer wg.Wait()

	start := time.Now()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range n {
			q.Push(gen(i))
		}
	}()

	var (
		elem    T
		sw      spin.Wait
		maxSize int
	)
	for want := uint64(0); want < n; {
		if !q.PopInto(&elem) {
			sw.Once()
			continue
		}
		sw.Reset()
		if got := seq(&elem); got != want {
			return Result{}, fmt.Errorf("%w: got %d, want %d", ErrOutOfOrder, got, want)
		}
		want++
		if want&sizeSampleMask == 0 {
			maxSize = max(maxSize, q.Size())
		}
	}
	elapsed := time.Since(start)

	return Result{
		Messages:   cfg.Messages,
		BlockSize:  q.BlockSize(),
		Elapsed:    elapsed,
		Throughput: float64(n) / elapsed.Seconds(),
		MaxSize:    maxSize,
	}, nil
}
