package test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	memorystore "LinkStore/memoryStore"
)

func newListStore() memorystore.ListManager {
	return memorystore.NewListManager(200)
}

// -------------------- One test per ListManager method --------------------

func TestLPushNewKey(t *testing.T) {
	store := newListStore()
	if err := store.LPush("nums", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, e := store.LPop("nums")
	if e != nil {
		t.Fatalf("unexpected error:  %v", e)
	}
	if v != 1 {
		t.Fatalf("expected 1 got %d", v)
	}
}

func TestRPushNewKey(t *testing.T) {
	store := newListStore()
	if err := store.RPush("letters", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, _ := store.LRange("letters", 0, -1)
	if len(res) != 1 || res[0] != "a" {
		t.Errorf("expected [a], got %v", res)
	}
}

func TestLPopMissingKey(t *testing.T) {
	store := newListStore()
	_, err := store.LPop("missing")
	if !errors.Is(err, memorystore.ErrKeyDoesNotExist) {
		t.Errorf("expected ErrKeyDoesNotExist, got %v", err)
	}
}

func TestRPopMissingKey(t *testing.T) {
	store := newListStore()
	_, err := store.RPop("missing")
	if !errors.Is(err, memorystore.ErrKeyDoesNotExist) {
		t.Errorf("expected ErrKeyDoesNotExist, got %v", err)
	}
}

func TestLPopAfterPush(t *testing.T) {
	store := newListStore()
	store.RPush("nums", 1)
	store.RPush("nums", 2)
	// 1 -> 2
	// -> 2
	v, _ := store.LPop("nums")
	if v != 1 {
		t.Errorf("expected 1, got %v", v)
	}
	if store.Size("nums") != 1 {
		t.Errorf("expected size 1, got %d", store.Size("nums"))
	}
}

func TestRPopAfterPush(t *testing.T) {
	store := newListStore()
	store.LPush("nums", 1)
	store.LPush("nums", 2)
	// 2 -> 1
	v, _ := store.RPop("nums")
	if v != 1 {
		t.Errorf("expected 1, got %v", v)
	}
}

func TestTwoEndedConsumption(t *testing.T) {
	store := newListStore()
	store.LPush("q", 1)
	store.LPush("q", 2)
	store.LPush("q", 3)

	if v, _ := store.LPop("q"); v != 3 {
		t.Errorf("expected 3, got %v", v)
	}
	if v, _ := store.RPop("q"); v != 1 {
		t.Errorf("expected 1, got %v", v)
	}
	if v, _ := store.LPop("q"); v != 2 {
		t.Errorf("expected 2, got %v", v)
	}
	// drained lists are removed
	if _, err := store.LPop("q"); !errors.Is(err, memorystore.ErrKeyDoesNotExist) {
		t.Errorf("expected drained key to be gone, got %v", err)
	}
	if store.CurrentSize() != 0 {
		t.Errorf("expected no keys, got %d", store.CurrentSize())
	}
}

func TestLRangeNegativeIndices(t *testing.T) {
	store := newListStore()
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		store.RPush("letters", v)
	}

	cases := []struct {
		start, stop int
		want        []any
	}{
		{0, -1, []any{"a", "b", "c", "d", "e"}},
		{1, 2, []any{"b", "c"}},
		{-2, -1, []any{"d", "e"}},
		{-100, 0, []any{"a"}},
		{3, 100, []any{"d", "e"}},
		{4, 2, []any{}},
		{10, 12, []any{}},
	}
	for _, c := range cases {
		got, err := store.LRange("letters", c.start, c.stop)
		if err != nil {
			t.Fatalf("LRange(%d, %d): unexpected error %v", c.start, c.stop, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("LRange(%d, %d): expected %v, got %v", c.start, c.stop, c.want, got)
		}
	}
}

func TestLIndex(t *testing.T) {
	store := newListStore()
	store.RPush("nums", 10)
	store.RPush("nums", 20)
	store.RPush("nums", 30)

	if v, _ := store.LIndex("nums", 1); v != 20 {
		t.Errorf("expected 20, got %v", v)
	}
	if v, _ := store.LIndex("nums", -1); v != 30 {
		t.Errorf("expected 30, got %v", v)
	}
	if _, err := store.LIndex("nums", 3); !errors.Is(err, memorystore.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	_, err := store.LIndex("nums", -4)
	if !errors.Is(err, memorystore.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	} else if !strings.Contains(err.Error(), "index -4 ") {
		t.Errorf("expected the caller's index in %q", err)
	}
	if _, err := store.LIndex("missing", 0); !errors.Is(err, memorystore.ErrKeyDoesNotExist) {
		t.Errorf("expected ErrKeyDoesNotExist, got %v", err)
	}
}

func TestMaxSizeNoEviction(t *testing.T) {
	store := memorystore.NewOrderedListStore(memorystore.WithMaxSize(2))
	store.RPush("k", 1)
	store.RPush("k", 2)
	if err := store.RPush("k", 3); err == nil {
		t.Fatalf("expected max size error")
	}
	if err := store.LPush("k", 0); err == nil {
		t.Fatalf("expected max size error")
	}
	if store.Size("k") != 2 {
		t.Errorf("expected size 2, got %d", store.Size("k"))
	}
}

func TestMaxSizeEvictOldest(t *testing.T) {
	store := memorystore.NewOrderedListStore(
		memorystore.WithMaxSize(3),
		memorystore.WithEvictionPolicy("evict oldest"),
	)
	for i := 1; i <= 5; i++ {
		if err := store.RPush("k", i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got, _ := store.LRange("k", 0, -1)
	if !reflect.DeepEqual(got, []any{3, 4, 5}) {
		t.Errorf("expected [3 4 5], got %v", got)
	}

	store.LPush("k", 2)
	got, _ = store.LRange("k", 0, -1)
	if !reflect.DeepEqual(got, []any{2, 3, 4}) {
		t.Errorf("expected [2 3 4], got %v", got)
	}
}

func TestDeleteLargeList(t *testing.T) {
	store := memorystore.NewOrderedListStore(memorystore.WithMaxSize(20_000))
	for i := 0; i < 10_000; i++ {
		store.RPush("big", i)
	}
	if !store.Delete("big") {
		t.Fatalf("expected Delete to report the key existed")
	}
	if store.Size("big") != 0 {
		t.Errorf("expected size 0 after delete, got %d", store.Size("big"))
	}
	if store.Delete("big") {
		t.Errorf("expected second Delete to report false")
	}
}

func TestKeys(t *testing.T) {
	store := newListStore()
	store.RPush("a", 1)
	store.RPush("b", 1)
	keys := store.Keys()
	if len(keys) != 2 {
		t.Errorf("expected 2 keys, got %v", keys)
	}
}
