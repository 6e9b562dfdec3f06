// Package pqueue provides a keyed min-priority queue with stable ordering.
//
// Items with equal priority leave the queue in insertion order. Every item is
// indexed by its key, so lookups are O(1) and priority updates are O(log n).
package pqueue

import "container/heap"

// Item is an entry of the queue.
type Item[K comparable, V any] struct {
	Key      K
	Value    V
	Priority float64

	seq   uint64 // insertion order, breaks priority ties
	index int    // position in the heap, maintained by Swap
}

type items[K comparable, V any] []*Item[K, V]

func (q items[K, V]) Len() int { return len(q) }
func (q items[K, V]) Less(i, j int) bool {
	if q[i].Priority != q[j].Priority {
		return q[i].Priority < q[j].Priority
	}
	return q[i].seq < q[j].seq
}
func (q items[K, V]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *items[K, V]) Push(x any) {
	item := x.(*Item[K, V])
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *items[K, V]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// Queue is a min-priority queue keyed by K. The zero value is not usable,
// use New.
type Queue[K comparable, V any] struct {
	heap  items[K, V]
	byKey map[K]*Item[K, V]
	seq   uint64
}

// New returns an empty queue.
func New[K comparable, V any]() *Queue[K, V] {
	return &Queue[K, V]{byKey: make(map[K]*Item[K, V])}
}

// Len returns the number of queued items.
func (q *Queue[K, V]) Len() int { return len(q.heap) }

// IsEmpty reports whether the queue has no items.
func (q *Queue[K, V]) IsEmpty() bool { return len(q.heap) == 0 }

// Enqueue inserts value under key with the given priority. If key is already
// queued, its value and priority are replaced and it keeps its original
// insertion order.
func (q *Queue[K, V]) Enqueue(key K, value V, priority float64) {
	if q.Update(key, value, priority) {
		return
	}

	item := &Item[K, V]{Key: key, Value: value, Priority: priority, seq: q.seq}
	q.seq++
	heap.Push(&q.heap, item)
	q.byKey[key] = item
}

// ExtractMin removes and returns the item with the lowest priority. ok is
// false when the queue is empty.
func (q *Queue[K, V]) ExtractMin() (item Item[K, V], ok bool) {
	if len(q.heap) == 0 {
		return Item[K, V]{}, false
	}
	popped := heap.Pop(&q.heap).(*Item[K, V])
	delete(q.byKey, popped.Key)
	return *popped, true
}

// Peek returns the item ExtractMin would return without removing it.
func (q *Queue[K, V]) Peek() (item Item[K, V], ok bool) {
	if len(q.heap) == 0 {
		return Item[K, V]{}, false
	}
	return *q.heap[0], true
}

// Get returns the queued item for key.
func (q *Queue[K, V]) Get(key K) (item Item[K, V], ok bool) {
	found, ok := q.byKey[key]
	if !ok {
		return Item[K, V]{}, false
	}
	return *found, true
}

// Contains reports whether key is queued.
func (q *Queue[K, V]) Contains(key K) bool {
	_, ok := q.byKey[key]
	return ok
}

// Update replaces the value and priority of a queued key and restores the
// heap order. It reports false when key is not queued.
func (q *Queue[K, V]) Update(key K, value V, priority float64) bool {
	item, ok := q.byKey[key]
	if !ok {
		return false
	}
	item.Value = value
	item.Priority = priority
	heap.Fix(&q.heap, item.index)
	return true
}

// Each calls fn for every queued item in unspecified order until fn returns false.
func (q *Queue[K, V]) Each(fn func(item Item[K, V]) bool) {
	for _, item := range q.heap {
		if !fn(*item) {
			return
		}
	}
}
