package DS

import (
	"fmt"
	"iter"
	"strings"
)

type plNode[T any] struct {
	value T
	next  *plNode[T]
}

// PersistentList is an immutable singly linked list. Lists derived from one
// another share their common suffix: Prepend allocates one node pointing at
// the receiver's head and Tail hands out the receiver's second node. Nodes
// are never written after construction, so any number of lists may reference
// the same node.
//
// The zero value is the empty list.
type PersistentList[T any] struct {
	head *plNode[T]
	size int
}

// NewPersistentList builds a list whose head is items[0].
func NewPersistentList[T any](items ...T) PersistentList[T] {
	var l PersistentList[T]
	for i := len(items) - 1; i >= 0; i-- {
		l = l.Prepend(items[i])
	}
	return l
}

// Prepend returns a new list with value in front of l. l is unchanged.
func (l PersistentList[T]) Prepend(value T) PersistentList[T] {
	return PersistentList[T]{
		head: &plNode[T]{value: value, next: l.head},
		size: l.size + 1,
	}
}

func (l PersistentList[T]) Head() (T, bool) {
	var zero T
	if l.head == nil {
		return zero, false
	}
	return l.head.value, true
}

// Tail returns l without its first element. The tail of an empty or
// single-element list is the empty list.
func (l PersistentList[T]) Tail() PersistentList[T] {
	if l.head == nil || l.head.next == nil {
		return PersistentList[T]{}
	}
	return PersistentList[T]{head: l.head.next, size: l.size - 1}
}

func (l PersistentList[T]) Len() int      { return l.size }
func (l PersistentList[T]) IsEmpty() bool { return l.head == nil }

// Identical reports whether l and other start at the same node, so they are
// the same list by identity rather than by value.
func (l PersistentList[T]) Identical(other PersistentList[T]) bool {
	return l.head != nil && l.head == other.head
}

// SharesTail reports whether l and other end in a common run of nodes. Two
// lists built separately from equal values share nothing.
func (l PersistentList[T]) SharesTail(other PersistentList[T]) bool {
	a, b := l.head, other.head
	for i := l.size; i > other.size; i-- {
		a = a.next
	}
	for i := other.size; i > l.size; i-- {
		b = b.next
	}
	// once aligned, a shared suffix starts at the first common node
	for ; a != nil; a, b = a.next, b.next {
		if a == b {
			return true
		}
	}
	return false
}

// All yields the values head first. Each call starts a fresh walk.
func (l PersistentList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

func (l PersistentList[T]) ToSlice() []T {
	out := make([]T, 0, l.size)
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

func (l PersistentList[T]) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprint(n.value))
	}
	sb.WriteString(")")
	return sb.String()
}
