// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fifo_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/fifo"
)

// =============================================================================
// Basic Operations
// =============================================================================

// TestQueueLiteral walks the push/pop sequence from the package docs.
func TestQueueLiteral(t *testing.T) {
	q := fifo.NewQueue[int]()

	q.Push(10)
	q.Push(20)

	var v int
	if !q.PopInto(&v) || v != 10 {
		t.Fatalf("PopInto: got %d, want 10", v)
	}
	if q.Size() != 1 {
		t.Fatalf("Size: got %d, want 1", q.Size())
	}

	q.Push(30)
	if !q.PopInto(&v) || v != 20 {
		t.Fatalf("PopInto: got %d, want 20", v)
	}
	if !q.PopInto(&v) || v != 30 {
		t.Fatalf("PopInto: got %d, want 30", v)
	}
	if !q.Empty() {
		t.Fatalf("Empty: got false, want true (Size=%d)", q.Size())
	}
}

func TestQueueEmpty(t *testing.T) {
	q := fifo.NewQueue[string]()

	if !q.Empty() || q.Size() != 0 {
		t.Fatalf("new queue: Size=%d Empty=%v", q.Size(), q.Empty())
	}
	if q.Pop() {
		t.Fatal("Pop on empty: got true, want false")
	}

	v := "untouched"
	if q.PopInto(&v) {
		t.Fatal("PopInto on empty: got true, want false")
	}
	if v != "untouched" {
		t.Fatalf("PopInto on empty modified dst: got %q", v)
	}

	if _, err := q.Dequeue(); !errors.Is(err, fifo.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
	if _, err := q.Peek(); !fifo.IsWouldBlock(err) {
		t.Fatalf("Peek on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestQueueSizeConsistency checks Size after k pushes and j pops.
func TestQueueSizeConsistency(t *testing.T) {
	q := fifo.Build[int](fifo.New().BlockSize(4))

	pushes, pops := 0, 0
	for round := range 50 {
		for range round % 7 {
			q.Push(pushes)
			pushes++
		}
		for range round % 5 {
			if q.Pop() {
				pops++
			}
		}
		if got, want := q.Size(), pushes-pops; got != want {
			t.Fatalf("round %d: Size: got %d, want %d", round, got, want)
		}
		if got, want := q.Empty(), pushes == pops; got != want {
			t.Fatalf("round %d: Empty: got %v, want %v", round, got, want)
		}
	}
}

// TestQueueInterleavedFIFO interleaves pushes and pops across many blocks.
func TestQueueInterleavedFIFO(t *testing.T) {
	q := fifo.Build[int](fifo.New().BlockSize(8))

	next, want := 0, 0
	for round := range 200 {
		for range round%13 + 1 {
			q.Push(next)
			next++
		}
		for range round % 11 {
			v, err := q.Dequeue()
			if err != nil {
				break
			}
			if v != want {
				t.Fatalf("round %d: got %d, want %d", round, v, want)
			}
			want++
		}
	}
	for v := range q.Drain() {
		if v != want {
			t.Fatalf("drain: got %d, want %d", v, want)
		}
		want++
	}
	if want != next {
		t.Fatalf("popped %d values, pushed %d", want, next)
	}
}

// =============================================================================
// Block Boundaries
// =============================================================================

type elem64 struct {
	seq int
	_   [56]byte
}

type elem512 struct {
	seq int
	_   [504]byte
}

type elem4K struct {
	seq int
	_   [4088]byte
}

// boundaryCounts returns N+1, 2N and 2N+1 plus the values either side of
// each block edge.
func boundaryCounts(n int) []int {
	return []int{1, n - 1, n, n + 1, 2*n - 1, 2 * n, 2*n + 1, 3*n + 1}
}

func checkBoundaries[T any](t *testing.T, wantBlock int, mk func(int) T, seq func(T) int) {
	t.Helper()
	q := fifo.NewQueue[T]()
	if q.BlockSize() != wantBlock {
		t.Fatalf("BlockSize: got %d, want %d", q.BlockSize(), wantBlock)
	}

	for _, count := range boundaryCounts(wantBlock) {
		for i := range count {
			q.Push(mk(i))
		}
		if q.Size() != count {
			t.Fatalf("count %d: Size: got %d", count, q.Size())
		}
		for i := range count {
			v, err := q.Dequeue()
			if err != nil {
				t.Fatalf("count %d: Dequeue(%d): %v", count, i, err)
			}
			if seq(v) != i {
				t.Fatalf("count %d: Dequeue(%d): got %d", count, i, seq(v))
			}
		}
		if q.Pop() {
			t.Fatalf("count %d: Pop after drain: got true", count)
		}
	}
}

func TestQueueBlockBoundaries(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		checkBoundaries(t, 128,
			func(i int) int { return i },
			func(v int) int { return v })
	})
	t.Run("64B", func(t *testing.T) {
		checkBoundaries(t, 32,
			func(i int) elem64 { return elem64{seq: i} },
			func(v elem64) int { return v.seq })
	})
	t.Run("512B", func(t *testing.T) {
		checkBoundaries(t, 4,
			func(i int) elem512 { return elem512{seq: i} },
			func(v elem512) int { return v.seq })
	})
	t.Run("4KiB", func(t *testing.T) {
		checkBoundaries(t, 2,
			func(i int) elem4K { return elem4K{seq: i} },
			func(v elem4K) int { return v.seq })
	})
}

func TestQueueBlockBoundariesNoRecycle(t *testing.T) {
	q := fifo.Build[int](fifo.New().BlockSize(2).Recycle(0))
	for _, count := range boundaryCounts(2) {
		for i := range count {
			q.Push(i)
		}
		for i := range count {
			var v int
			if !q.PopInto(&v) || v != i {
				t.Fatalf("count %d: PopInto(%d): got %d", count, i, v)
			}
		}
	}
}

// =============================================================================
// Front, Peek, Emplace
// =============================================================================

func TestQueueFront(t *testing.T) {
	q := fifo.Build[int](fifo.New().BlockSize(2))

	for i := range 5 {
		q.Push(i)
	}
	for i := range 5 {
		if got := *q.Front(); got != i {
			t.Fatalf("Front(%d): got %d", i, got)
		}
		if got, err := q.Peek(); err != nil || got != i {
			t.Fatalf("Peek(%d): got %d, %v", i, got, err)
		}
		// Front must not consume.
		if q.Size() != 5-i {
			t.Fatalf("Size after Front(%d): got %d, want %d", i, q.Size(), 5-i)
		}
		q.Pop()
	}
}

func TestQueueFrontMutates(t *testing.T) {
	q := fifo.NewQueue[[]int]()
	q.Push([]int{1})

	f := q.Front()
	*f = append(*f, 2)

	v, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if len(v) != 2 || v[1] != 2 {
		t.Fatalf("Dequeue: got %v, want [1 2]", v)
	}
}

func TestQueueFrontPanicsOnEmpty(t *testing.T) {
	q := fifo.NewQueue[int]()
	defer func() {
		if recover() == nil {
			t.Fatal("Front on empty: expected panic")
		}
	}()
	q.Front()
}

func TestQueueEmplace(t *testing.T) {
	type frame struct {
		id   int
		data []byte
	}
	q := fifo.Build[frame](fifo.New().BlockSize(2))

	for i := range 7 {
		q.Emplace(func(f *frame) {
			f.id = i
			f.data = []byte{byte(i)}
		})
	}
	for i := range 7 {
		f, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if f.id != i || len(f.data) != 1 || f.data[0] != byte(i) {
			t.Fatalf("Dequeue(%d): got %+v", i, f)
		}
	}
}

func TestQueueEmplacePanicPublishesNothing(t *testing.T) {
	q := fifo.Build[int](fifo.New().BlockSize(2))
	q.Push(0)
	q.Push(1)

	func() {
		defer func() { _ = recover() }()
		q.Emplace(func(*int) { panic("boom") })
	}()
	if q.Size() != 2 {
		t.Fatalf("Size after panicking Emplace: got %d, want 2", q.Size())
	}

	q.Push(2)
	for i := range 3 {
		v, err := q.Dequeue()
		if err != nil || v != i {
			t.Fatalf("Dequeue(%d): got %d, %v", i, v, err)
		}
	}
}

func TestQueueEmplacePanicLeavesSlotClean(t *testing.T) {
	type frame struct {
		id     int
		secret int
	}
	q := fifo.Build[frame](fifo.New().BlockSize(2))

	emplacePanics := func() {
		defer func() { _ = recover() }()
		q.Emplace(func(f *frame) {
			f.secret = 42
			panic("boom")
		})
	}
	emplace := func(id int) {
		q.Emplace(func(f *frame) {
			if *f != (frame{}) {
				t.Fatalf("Emplace(%d): slot not zero: %+v", id, *f)
			}
			f.id = id
		})
	}

	emplace(0)
	emplacePanics() // slot 1 of the first block
	emplace(1)
	emplacePanics() // slot 0 of the unlinked successor
	emplace(2)

	for i := range 3 {
		f, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if f.id != i || f.secret != 0 {
			t.Fatalf("Dequeue(%d): got %+v", i, f)
		}
	}
	if q.Pop() {
		t.Fatal("Pop after drain: got true")
	}
}

// =============================================================================
// Batch and Drain
// =============================================================================

func TestQueuePopBatch(t *testing.T) {
	q := fifo.Build[int](fifo.New().BlockSize(4))
	for i := range 10 {
		q.Push(i)
	}

	buf := make([]int, 6)
	if n := q.PopBatch(buf); n != 6 {
		t.Fatalf("PopBatch: got %d, want 6", n)
	}
	for i, v := range buf {
		if v != i {
			t.Fatalf("PopBatch[%d]: got %d", i, v)
		}
	}

	if n := q.PopBatch(buf); n != 4 {
		t.Fatalf("PopBatch: got %d, want 4", n)
	}
	for i, v := range buf[:4] {
		if v != i+6 {
			t.Fatalf("PopBatch[%d]: got %d, want %d", i, v, i+6)
		}
	}

	if n := q.PopBatch(buf); n != 0 {
		t.Fatalf("PopBatch on empty: got %d, want 0", n)
	}
}

func TestQueueDrainStopsEarly(t *testing.T) {
	q := fifo.NewQueue[int]()
	for i := range 10 {
		q.Push(i)
	}

	var got []int
	for v := range q.Drain() {
		got = append(got, v)
		if v == 3 {
			break
		}
	}
	if len(got) != 4 {
		t.Fatalf("Drain: got %v, want [0 1 2 3]", got)
	}
	if q.Size() != 6 {
		t.Fatalf("Size after early stop: got %d, want 6", q.Size())
	}
	if v, _ := q.Peek(); v != 4 {
		t.Fatalf("Peek after early stop: got %d, want 4", v)
	}
}

// =============================================================================
// Interfaces
// =============================================================================

func TestQueueInterfaces(t *testing.T) {
	q := fifo.NewQueue[int]()

	var p fifo.Producer[int] = q
	var c fifo.Consumer[int] = q
	var m fifo.Monitor = q

	for i := range 3 {
		v := i * 10
		if err := p.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if m.Size() != 3 {
		t.Fatalf("Size: got %d, want 3", m.Size())
	}
	for i := range 3 {
		v, err := c.Dequeue()
		if err != nil || v != i*10 {
			t.Fatalf("Dequeue(%d): got %d, %v", i, v, err)
		}
	}
	if !m.Empty() {
		t.Fatal("Empty: got false, want true")
	}
}

func TestErrorClassification(t *testing.T) {
	if !fifo.IsWouldBlock(fifo.ErrWouldBlock) {
		t.Fatal("IsWouldBlock(ErrWouldBlock): got false")
	}
	if !fifo.IsSemantic(fifo.ErrWouldBlock) {
		t.Fatal("IsSemantic(ErrWouldBlock): got false")
	}
	if !fifo.IsNonFailure(nil) || !fifo.IsNonFailure(fifo.ErrWouldBlock) {
		t.Fatal("IsNonFailure: got false for nil or ErrWouldBlock")
	}
	if fifo.IsNonFailure(errors.New("boom")) {
		t.Fatal("IsNonFailure(boom): got true")
	}
}

// =============================================================================
// Clear
// =============================================================================

func TestQueueClear(t *testing.T) {
	q := fifo.Build[int](fifo.New().BlockSize(4))

	// Empty, partially filled, block-aligned, and multi-block states.
	for _, count := range []int{0, 3, 4, 9, 33} {
		for i := range count {
			q.Push(i)
		}
		// Leave the head mid-block.
		if count > 2 {
			q.Pop()
		}

		q.Clear()
		if !q.Empty() || q.Size() != 0 {
			t.Fatalf("count %d: after Clear: Size=%d", count, q.Size())
		}
		if q.Pop() {
			t.Fatalf("count %d: Pop after Clear: got true", count)
		}

		// Behaves like a fresh queue.
		for i := range 9 {
			q.Push(100 + i)
		}
		for i := range 9 {
			v, err := q.Dequeue()
			if err != nil || v != 100+i {
				t.Fatalf("count %d: Dequeue(%d) after Clear: got %d, %v", count, i, v, err)
			}
		}
	}

	q.Clear()
	q.Clear()
	if !q.Empty() {
		t.Fatal("double Clear: queue not empty")
	}
}

// =============================================================================
// Builder
// =============================================================================

func TestBuilderBlockSize(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{2, 2}, {3, 4}, {4, 4}, {100, 128}, {1024, 1024},
	}
	for _, c := range cases {
		q := fifo.Build[int](fifo.New().BlockSize(c.in))
		if q.BlockSize() != c.want {
			t.Fatalf("BlockSize(%d): got %d, want %d", c.in, q.BlockSize(), c.want)
		}
	}
}

func TestBuilderPanics(t *testing.T) {
	expectPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		f()
	}
	expectPanic("BlockSize(1)", func() { fifo.New().BlockSize(1) })
	expectPanic("BlockSize(0)", func() { fifo.New().BlockSize(0) })
	expectPanic("Recycle(-1)", func() { fifo.New().Recycle(-1) })
}

func TestUntrackedSize(t *testing.T) {
	q := fifo.Build[int](fifo.New().UntrackedSize().BlockSize(2))
	for i := range 5 {
		q.Push(i)
	}
	if q.Size() != 5 {
		t.Fatalf("Size: got %d, want 5", q.Size())
	}
	q.Pop()
	q.Pop()
	if q.Size() != 3 {
		t.Fatalf("Size: got %d, want 3", q.Size())
	}
	for q.Pop() {
	}
	if !q.Empty() {
		t.Fatal("Empty: got false, want true")
	}
}
