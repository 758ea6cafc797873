package DS

import (
	"errors"
	"iter"
)

// ErrConcurrentMutation is the panic value raised when a deque is modified
// while one of its borrowing iterators (All, Backward, Refs) is running.
var ErrConcurrentMutation = errors.New("deque mutated during iteration")

// Array/Linked List/ Queue
type SequenceStorage[T any] interface {
	PushFront(value T)    // add @ head
	PushBack(value T)     // add @ tail
	PopFront() (T, bool)  // remove head and return it
	PopBack() (T, bool)   // remove tail and return it
	PeekFront() (T, bool) // copy of head
	PeekBack() (T, bool)  // copy of tail
	Get(ix int) (T, bool) // copy of the value at ix
	Range(start, end int) []T
	ToSlice() []T
	Len() int
	IsEmpty() bool
	Clear()
}

type node[T any] struct {
	value T
	next  *node[T]
	prev  *node[T]
}

// Deque is a doubly linked list. Every interior node is reachable from both
// of its neighbours; the deque itself holds the two endpoints.
// The zero value is an empty deque ready to use.
type Deque[T any] struct {
	head *node[T]
	tail *node[T]
	size int
	busy int // live borrowing iterators
}

func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{
		head: nil,
		tail: nil,
	}
}

func NewSequenceStorage[T any]() SequenceStorage[T] {
	return NewDeque[T]()
}

// guard panics if a borrowing iterator is walking the deque.
func (d *Deque[T]) guard() {
	if d.busy > 0 {
		panic(ErrConcurrentMutation)
	}
}

func (d *Deque[T]) PushFront(value T) {
	d.guard()
	nn := &node[T]{value: value}
	if d.head == nil {
		d.head = nn
		d.tail = nn
	} else {
		d.head.prev = nn // old head points back to new node
		nn.next = d.head // new node points forward to old head
		d.head = nn
	}
	d.size++
}

func (d *Deque[T]) PushBack(value T) {
	d.guard()
	nn := &node[T]{value: value}
	if d.tail == nil {
		d.head = nn
		d.tail = nn
	} else {
		d.tail.next = nn // old tail points forward to new node
		nn.prev = d.tail // new node points back to old tail
		d.tail = nn      // update tail to new node
	}
	d.size++
}

func (d *Deque[T]) PopFront() (T, bool) {
	d.guard()
	var zero T
	if d.head == nil {
		return zero, false
	}
	oldHead := d.head

	d.head = oldHead.next
	if d.head != nil {
		d.head.prev = nil
	} else {
		// List became empty
		d.tail = nil
	}
	d.size--
	return detach(oldHead), true
}

func (d *Deque[T]) PopBack() (T, bool) {
	d.guard()
	var zero T
	if d.tail == nil {
		return zero, false
	}
	oldTail := d.tail

	d.tail = oldTail.prev
	if d.tail != nil {
		d.tail.next = nil
	} else {
		d.head = nil
	}
	d.size--
	return detach(oldTail), true
}

// detach moves the value out of n and clears its links so a popped node
// keeps nothing else alive.
func detach[T any](n *node[T]) T {
	var zero T
	v := n.value
	n.value = zero
	n.next = nil
	n.prev = nil
	return v
}

func (d *Deque[T]) PeekFront() (T, bool) {
	var zero T
	if d.head == nil {
		return zero, false
	}
	return d.head.value, true
}

func (d *Deque[T]) PeekBack() (T, bool) {
	var zero T
	if d.tail == nil {
		return zero, false
	}
	return d.tail.value, true
}

// PeekFrontMut returns a pointer to the front value. The pointer is only
// valid until the front node is popped.
func (d *Deque[T]) PeekFrontMut() (*T, bool) {
	if d.head == nil {
		return nil, false
	}
	return &d.head.value, true
}

func (d *Deque[T]) PeekBackMut() (*T, bool) {
	if d.tail == nil {
		return nil, false
	}
	return &d.tail.value, true
}

// Get returns the value at position ix counted from the front. Any index
// outside [0, Len()) reports false, including every index on an empty deque.
func (d *Deque[T]) Get(ix int) (T, bool) {
	var zero T
	if ix < 0 || ix >= d.size {
		return zero, false
	}
	// walk from whichever end is closer
	if ix < d.size/2 {
		current := d.head
		for i := 0; i < ix; i++ {
			current = current.next
		}
		return current.value, true
	}
	current := d.tail
	for i := d.size - 1; i > ix; i-- {
		current = current.prev
	}
	return current.value, true
}

func (d *Deque[T]) Len() int      { return d.size }
func (d *Deque[T]) IsEmpty() bool { return d.size == 0 }

// Range returns the values at positions start..end inclusive.
func (d *Deque[T]) Range(start, end int) []T {
	if start < 0 || end < start || d.head == nil {
		return []T{}
	}

	var result []T
	current := d.head
	index := 0

	for current != nil && index <= end {
		if index >= start {
			result = append(result, current.value)
		}
		current = current.next
		index++
	}
	if result == nil {
		return []T{}
	}
	return result
}

func (d *Deque[T]) ToSlice() []T {
	out := make([]T, 0, d.size)
	for n := d.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// Clear drops every element by popping from the front until the deque is
// empty, so teardown needs constant extra space whatever the length.
func (d *Deque[T]) Clear() {
	d.guard()
	for d.head != nil {
		d.PopFront()
	}
}

// All yields the values front to back without removing them.
func (d *Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		d.busy++
		defer func() { d.busy-- }()
		for n := d.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Backward yields the values back to front without removing them.
func (d *Deque[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		d.busy++
		defer func() { d.busy-- }()
		for n := d.tail; n != nil; n = n.prev {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Refs yields a pointer to each stored value front to back, allowing the
// values to be updated in place.
func (d *Deque[T]) Refs() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		d.busy++
		defer func() { d.busy-- }()
		for n := d.head; n != nil; n = n.next {
			if !yield(&n.value) {
				return
			}
		}
	}
}
