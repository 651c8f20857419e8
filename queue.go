package plainsight

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// PriorityQueue is a minimum-priority queue over arbitrary values.  Among
// elements of equal priority, the one pushed most recently is popped first.
//
// The zero value is an empty queue ready to use.
type PriorityQueue[T any] struct {
	h       queueHeap[T]
	nextSeq uint64
}

// Push adds value to the queue with the given priority.
func (q *PriorityQueue[T]) Push(value T, priority uint64) {
	heap.Push(&q.h, queueItem[T]{value: value, priority: priority, seq: q.nextSeq})
	q.nextSeq++
}

// Pop removes and returns the element with the lowest priority.  It is a
// programming error to call Pop on an empty queue.
func (q *PriorityQueue[T]) Pop() T {
	assert.Assertf(q.h.Len() != 0, "Pop called on an empty PriorityQueue")
	item := heap.Pop(&q.h).(queueItem[T])
	return item.value
}

// IsEmpty returns true iff the queue holds no elements.
func (q *PriorityQueue[T]) IsEmpty() bool {
	return q.h.Len() == 0
}

// Len returns the number of elements in the queue.
func (q *PriorityQueue[T]) Len() int {
	return q.h.Len()
}

// type queueItem + type queueHeap {{{

type queueItem[T any] struct {
	value    T
	priority uint64
	seq      uint64
}

type queueHeap[T any] struct {
	list []queueItem[T]
}

func (h *queueHeap[T]) Len() int {
	return len(h.list)
}

func (h *queueHeap[T]) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *queueHeap[T]) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq > b.seq
}

func (h *queueHeap[T]) Push(x interface{}) {
	h.list = append(h.list, x.(queueItem[T]))
}

func (h *queueHeap[T]) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = queueItem[T]{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*queueHeap[int])(nil)

// }}}
