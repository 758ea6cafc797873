package DS

// DequeIter consumes a deque from either end. Both ends pop from the same
// underlying deque, so once they meet every element has been yielded exactly
// once and both Next and NextBack report false.
type DequeIter[T any] struct {
	d *Deque[T]
}

// IntoIter takes ownership of the deque's contents: d is left empty and the
// returned iterator holds the nodes.
func (d *Deque[T]) IntoIter() *DequeIter[T] {
	d.guard()
	owned := &Deque[T]{head: d.head, tail: d.tail, size: d.size}
	d.head, d.tail, d.size = nil, nil, 0
	return &DequeIter[T]{d: owned}
}

func (it *DequeIter[T]) Next() (T, bool)     { return it.d.PopFront() }
func (it *DequeIter[T]) NextBack() (T, bool) { return it.d.PopBack() }

// Remaining reports how many elements have not been yielded yet.
func (it *DequeIter[T]) Remaining() int { return it.d.Len() }
