package pqueue

import (
	"container/heap"
)

// Queue is a min-priority queue of (element, priority) pairs. An element
// may be enqueued any number of times; every copy is retrievable.
// The zero value is not usable: construct with New.
type Queue[T any] struct {
	h   entryHeap[T]
	seq uint64 // insertion counter, breaks priority ties
}

// New returns an empty queue.
func New[T any](opts ...Option) *Queue[T] {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	q := &Queue[T]{h: make(entryHeap[T], 0, cfg.Capacity)}
	heap.Init(&q.h)
	return q
}

// Enqueue inserts v with the given priority.
// Complexity: O(log n).
func (q *Queue[T]) Enqueue(v T, priority int) {
	heap.Push(&q.h, &entry[T]{value: v, priority: priority, seq: q.seq})
	q.seq++
}

// Dequeue removes and returns an element holding the minimum priority.
// Among equal priorities the earliest enqueued element wins, so identical
// input sequences always dequeue in the same order.
// Returns ErrEmptyQueue on an empty queue.
// Complexity: O(log n).
func (q *Queue[T]) Dequeue() (T, error) {
	if q.h.Len() == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	e := heap.Pop(&q.h).(*entry[T])
	return e.value, nil
}

// Count returns the number of queued elements.
func (q *Queue[T]) Count() int { return q.h.Len() }

// Clear drops every element. The insertion counter is reset as well.
func (q *Queue[T]) Clear() {
	for i := range q.h {
		q.h[i] = nil
	}
	q.h = q.h[:0]
	q.seq = 0
}

// entry is one queued element with its priority and insertion number.
type entry[T any] struct {
	value    T
	priority int
	seq      uint64
}

// entryHeap is a min-heap of *entry ordered by (priority, seq).
type entryHeap[T any] []*entry[T]

func (h entryHeap[T]) Len() int { return len(h) }

func (h entryHeap[T]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap[T]) Push(x any) { *h = append(*h, x.(*entry[T])) }

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[:n-1]
	return e
}
