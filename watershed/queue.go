package watershed

import (
	"container/heap"
	"fmt"
)

// pixelHeap is a min-heap of pool handles, ordered by wsPixel.val ascending
// and then by wsPixel.seq, so entries of equal value leave in push order.
type pixelHeap struct {
	pool *pool[wsPixel]
	h    []int32
}

// Len returns the number of items in the heap.
func (ph pixelHeap) Len() int { return len(ph.h) }

// Less orders by value, then by insertion sequence.
func (ph pixelHeap) Less(i, j int) bool {
	a, b := ph.pool.at(ph.h[i]), ph.pool.at(ph.h[j])
	if a.val != b.val {
		return a.val < b.val
	}
	return a.seq < b.seq
}

// Swap swaps two elements in the heap.
func (ph pixelHeap) Swap(i, j int) { ph.h[i], ph.h[j] = ph.h[j], ph.h[i] }

// Push adds a new handle onto the heap. Called by heap.Push.
func (ph *pixelHeap) Push(x interface{}) { ph.h = append(ph.h, x.(int32)) }

// Pop removes and returns the last handle. Called by heap.Pop.
func (ph *pixelHeap) Pop() interface{} {
	old := ph.h
	n := len(old)
	item := old[n-1]
	ph.h = old[:n-1]

	return item
}

// pixelQueue is the flood priority queue. Entries live in a pool and the
// heap only moves int32 handles around.
type pixelQueue struct {
	pool  pool[wsPixel]
	heap  pixelHeap
	seq   uint64
	limit int
	peak  int
}

// newPixelQueue returns an empty queue. limit > 0 caps the live entries.
func newPixelQueue(limit int) *pixelQueue {
	q := &pixelQueue{limit: limit}
	q.heap.pool = &q.pool
	heap.Init(&q.heap)
	return q
}

// push inserts (val, x, y, label). It fails with ErrOutOfMemory when the
// queue is full.
func (q *pixelQueue) push(val, x, y, label int) error {
	if q.limit > 0 && q.heap.Len() >= q.limit {
		return fmt.Errorf("%w: priority queue limit %d reached", ErrOutOfMemory, q.limit)
	}
	h := q.pool.acquire()
	*q.pool.at(h) = wsPixel{val: val, x: x, y: y, label: label, seq: q.seq}
	q.seq++
	heap.Push(&q.heap, h)
	if n := q.heap.Len(); n > q.peak {
		q.peak = n
	}
	return nil
}

// pop removes the entry with the smallest value, oldest first on ties.
func (q *pixelQueue) pop() (wsPixel, error) {
	if q.heap.Len() == 0 {
		return wsPixel{}, ErrEmptyQueue
	}
	h := heap.Pop(&q.heap).(int32)
	p := *q.pool.at(h)
	q.pool.release(h)
	return p, nil
}

func (q *pixelQueue) size() int {
	return q.heap.Len()
}

// drain releases every queued entry back to the pool.
func (q *pixelQueue) drain() {
	for _, h := range q.heap.h {
		q.pool.release(h)
	}
	q.heap.h = q.heap.h[:0]
}

// pointQueue is the first-in first-out queue used by basin extraction.
type pointQueue struct {
	pool pool[newPixel]
	fifo []int32
	head int
}

func (q *pointQueue) push(x, y int) {
	h := q.pool.acquire()
	*q.pool.at(h) = newPixel{x: x, y: y}
	q.fifo = append(q.fifo, h)
}

func (q *pointQueue) pop() (x, y int, ok bool) {
	if q.head == len(q.fifo) {
		return 0, 0, false
	}
	h := q.fifo[q.head]
	q.head++
	if q.head == len(q.fifo) {
		q.fifo = q.fifo[:0]
		q.head = 0
	}
	p := q.pool.at(h)
	x, y = p.x, p.y
	q.pool.release(h)
	return x, y, true
}

func (q *pointQueue) size() int {
	return len(q.fifo) - q.head
}
