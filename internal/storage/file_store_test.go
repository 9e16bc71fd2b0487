package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "neuroflow.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on missing file, got %v", err)
	}
	if err := store.Set(ctx, "neuroflow_state", `{"isPremium":true}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "neuroflow_high_score", "7"); err != nil {
		t.Fatalf("set second key: %v", err)
	}

	reopened := NewFileStore(path)
	got, err := reopened.Get(ctx, "neuroflow_state")
	if err != nil || got != `{"isPremium":true}` {
		t.Fatalf("unexpected value after reopen: %q %v", got, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err=%v", err)
	}
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neuroflow.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	store := NewFileStore(path)
	ctx := context.Background()

	if _, err := store.Get(ctx, "k"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set over corrupt file: %v", err)
	}
	if got, err := store.Get(ctx, "k"); err != nil || got != "v" {
		t.Fatalf("unexpected value: %q %v", got, err)
	}
}

func TestMemoryStoreAndQuota(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	q := Quota{KV: mem, Limit: 4}

	if err := q.Set(ctx, "k", "1234"); err != nil {
		t.Fatalf("set within quota: %v", err)
	}
	if err := q.Set(ctx, "k", "12345"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	got, err := q.Get(ctx, "k")
	if err != nil || got != "1234" {
		t.Fatalf("rejected write must not change value: %q %v", got, err)
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []Backend{BackendMemory, BackendFile, BackendSQLite} {
		kv, closeFn, err := Open(backend, filepath.Join(dir, string(backend)+".db"))
		if err != nil {
			t.Fatalf("open %s: %v", backend, err)
		}
		if err := kv.Set(context.Background(), "k", "v"); err != nil {
			t.Fatalf("%s set: %v", backend, err)
		}
		if err := closeFn(); err != nil {
			t.Fatalf("%s close: %v", backend, err)
		}
	}
	if _, _, err := Open(Backend("redis"), ""); err == nil {
		t.Fatal("expected unknown backend error")
	}
}
