package storage

import (
	"testing"
)

func openTestStore(t *testing.T) *DBStorage {
	t.Helper()
	store, err := NewInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestPutGetDelete(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("k", []byte("v")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, err := store.Get("k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("got %q, want v", got)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err = store.Get("k")
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("deleted key still returns %q", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Get("absent")
	if err != nil {
		t.Fatalf("missing key should not error: %v", err)
	}
	if got != nil {
		t.Errorf("missing key returned %q", got)
	}
}

func TestGetByPrefix(t *testing.T) {
	store := openTestStore(t)

	store.Put("session:a", []byte("1"))
	store.Put("session:b", []byte("2"))
	store.Put("other:c", []byte("3"))

	got, err := store.GetByPrefix("session:")
	if err != nil {
		t.Fatalf("prefix scan failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 session keys, got %d", len(got))
	}
	if string(got["session:a"]) != "1" || string(got["session:b"]) != "2" {
		t.Errorf("unexpected prefix results %v", got)
	}
}

func TestObjectRoundTrip(t *testing.T) {
	store := openTestStore(t)

	type record struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}

	if err := store.PutObject("rec", record{Name: "widget", Score: 81.5}); err != nil {
		t.Fatalf("put object failed: %v", err)
	}

	var got record
	if err := store.GetObject("rec", &got); err != nil {
		t.Fatalf("get object failed: %v", err)
	}
	if got.Name != "widget" || got.Score != 81.5 {
		t.Errorf("unexpected record %+v", got)
	}

	if err := store.GetObject("missing", &got); err == nil {
		t.Error("missing object should error")
	}
}
