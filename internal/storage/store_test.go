package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "focuslog-test.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreSetGetDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, KeyStreak); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, KeyStreak, "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, KeyStreak, "4"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := store.Get(ctx, KeyStreak)
	if err != nil || !ok || got != "4" {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}

	if err := store.Set(ctx, KeyPoints, "1"); err != nil {
		t.Fatalf("set points: %v", err)
	}
	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != KeyPoints || keys[1] != KeyStreak {
		t.Fatalf("unexpected keys: %#v", keys)
	}

	if err := store.Delete(ctx, KeyStreak); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyStreak); ok {
		t.Fatal("expected key removed")
	}
}

func TestSQLiteStoreRejectsEmptyKey(t *testing.T) {
	store := setupStore(t)
	if err := store.Set(context.Background(), "", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestLoadFallsBackOnMissingNullAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if got := Load(ctx, store, KeyPoints, 7); got != 7 {
		t.Fatalf("missing key: got %d", got)
	}

	_ = store.Set(ctx, KeyPoints, "null")
	if got := Load(ctx, store, KeyPoints, 7); got != 7 {
		t.Fatalf("null value: got %d", got)
	}

	_ = store.Set(ctx, KeyPoints, "{not json")
	if got := Load(ctx, store, KeyPoints, 7); got != 7 {
		t.Fatalf("corrupt value: got %d", got)
	}

	_ = store.Set(ctx, KeyPoints, `"forty"`)
	if got := Load(ctx, store, KeyPoints, 7); got != 7 {
		t.Fatalf("wrong type: got %d", got)
	}

	_ = store.Set(ctx, KeyPoints, "42")
	if got := Load(ctx, store, KeyPoints, 7); got != 42 {
		t.Fatalf("valid value: got %d", got)
	}
}

func TestSaveRoundTripsStructuredValues(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	habits := map[string]map[string]bool{"2026-02-09": {"water": true}}
	if err := Save(ctx, store, KeyHabits, habits); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := Load(ctx, store, KeyHabits, map[string]map[string]bool{})
	if !got["2026-02-09"]["water"] {
		t.Fatalf("unexpected habits: %#v", got)
	}
}

func TestSavePropagatesWriteFailure(t *testing.T) {
	store := NewMemoryStore()
	store.FailSet = errors.New("disk full")
	err := Save(context.Background(), store, KeyPoints, 1)
	if err == nil || !errors.Is(err, store.FailSet) {
		t.Fatalf("expected wrapped write failure, got %v", err)
	}
}

func TestSaveReportsEncodeFailure(t *testing.T) {
	err := Save(context.Background(), NewMemoryStore(), KeyPoints, make(chan int))
	if err == nil {
		t.Fatal("expected encode error")
	}
}
