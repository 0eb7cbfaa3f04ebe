package pool

// queue is a generic unbounded FIFO. It does not provide thread-safety, so
// concurrent access must be guarded by the caller.
type queue[T any] struct {
	items []T
	head  int
}

func newQueue[T any](prealloc int) queue[T] {
	return queue[T]{
		items: make([]T, 0, prealloc),
	}
}

func (q *queue[T]) Push(item T) {
	if q.head == len(q.items) {
		// everything was consumed, so the backing array can be reused from the start
		q.items = q.items[:0]
		q.head = 0
	}

	q.items = append(q.items, item)
}

func (q *queue[T]) Pop() (item T, ok bool) {
	if q.head == len(q.items) {
		return item, false
	}

	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head++

	return item, true
}

func (q *queue[T]) Len() int {
	return len(q.items) - q.head
}
