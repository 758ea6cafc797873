package DS

import (
	"slices"
	"testing"
)

type point struct{ x, y int }

func TestPersistentBasics(t *testing.T) {
	var list PersistentList[int]
	if _, ok := list.Head(); ok {
		t.Fatalf("expected empty list to have no head")
	}

	list = list.Prepend(1).Prepend(2).Prepend(3)
	if v, _ := list.Head(); v != 3 {
		t.Errorf("expected head 3, got %d", v)
	}

	list = list.Tail()
	if v, _ := list.Head(); v != 2 {
		t.Errorf("expected head 2, got %d", v)
	}
	list = list.Tail()
	if v, _ := list.Head(); v != 1 {
		t.Errorf("expected head 1, got %d", v)
	}
	list = list.Tail()
	if _, ok := list.Head(); ok {
		t.Errorf("expected no head after three tails")
	}

	// tail past emptiness keeps returning the empty list
	for i := 0; i < 3; i++ {
		list = list.Tail()
		if !list.IsEmpty() || list.Len() != 0 {
			t.Fatalf("expected empty list, got %v", list)
		}
	}
}

func TestPersistentTailOfSingleton(t *testing.T) {
	one := PersistentList[string]{}.Prepend("only")
	tail := one.Tail()
	if !tail.IsEmpty() {
		t.Errorf("expected tail of single-element list to be empty, got %v", tail)
	}
	if v, _ := one.Head(); v != "only" {
		t.Errorf("expected receiver to be unchanged, got %q", v)
	}
}

func TestPersistentStructuralSharing(t *testing.T) {
	base := PersistentList[int]{}.Prepend(1).Prepend(2)
	a := base.Prepend(3)
	b := base.Prepend(4)

	for name, l := range map[string]PersistentList[int]{"a.Tail()": a.Tail(), "b.Tail()": b.Tail(), "base": base} {
		if v, _ := l.Head(); v != 2 {
			t.Errorf("%s: expected head 2, got %d", name, v)
		}
	}
	if !a.Tail().Identical(base) || !b.Tail().Identical(base) {
		t.Errorf("expected derived tails to be base itself")
	}
	if a.Tail().head.next != base.head.next {
		t.Errorf("expected shared suffix to be the same node")
	}
	if a.Identical(b) {
		t.Errorf("expected a and b to have distinct heads")
	}
	if !a.SharesTail(b) || !b.SharesTail(a) {
		t.Errorf("expected a and b to share base as their tail")
	}
	if !a.SharesTail(base.Tail()) {
		t.Errorf("expected a to share a suffix with a shorter list")
	}
	if got := base.ToSlice(); !slices.Equal(got, []int{2, 1}) {
		t.Errorf("expected base unchanged as [2 1], got %v", got)
	}
	if base.Len() != 2 || a.Len() != 3 || b.Len() != 3 {
		t.Errorf("unexpected lengths base=%d a=%d b=%d", base.Len(), a.Len(), b.Len())
	}
}

func TestPersistentValueEqualityIsNotSharing(t *testing.T) {
	x := NewPersistentList(1, 2)
	y := NewPersistentList(1, 2)
	if x.SharesTail(y) || x.Identical(y) {
		t.Errorf("equal values built separately must not share nodes")
	}
	if x.SharesTail(PersistentList[int]{}) || (PersistentList[int]{}).SharesTail(x) {
		t.Errorf("the empty list shares no nodes")
	}
	other := y.Prepend(0)
	if x.SharesTail(other) {
		t.Errorf("lists of different lengths built separately must not share nodes")
	}
	if !slices.Equal(x.ToSlice(), y.ToSlice()) {
		t.Errorf("expected equal contents")
	}
}

func TestPersistentIter(t *testing.T) {
	list := NewPersistentList[point]().Prepend(point{1, 1}).Prepend(point{2, 2}).Prepend(point{3, 3})

	first := slices.Collect(list.All())
	second := slices.Collect(list.All())
	want := []point{{3, 3}, {2, 2}, {1, 1}}
	if !slices.Equal(first, want) {
		t.Errorf("expected %v, got %v", want, first)
	}
	if !slices.Equal(second, first) {
		t.Errorf("expected iteration to be restartable, got %v then %v", first, second)
	}

	for v := range list.All() {
		if v.x == 3 {
			break
		}
	}
}

func TestNewPersistentListOrder(t *testing.T) {
	list := NewPersistentList("a", "b", "c")
	if got := list.String(); got != "(a b c)" {
		t.Errorf("expected (a b c), got %s", got)
	}
	if got := list.Tail().String(); got != "(b c)" {
		t.Errorf("expected (b c), got %s", got)
	}
	if got := (PersistentList[int]{}).String(); got != "()" {
		t.Errorf("expected (), got %s", got)
	}
}
