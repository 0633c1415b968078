package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "focusboard.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open("", nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadMissingKey(t *testing.T) {
	s, _ := openTestStore(t)
	v, ok, err := s.Load(context.Background(), "nope")
	if err != nil || ok || v != nil {
		t.Fatalf("Load missing = %q, %v, %v", v, ok, err)
	}
}

func TestSaveLoadUpsert(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "boards", []byte(`[]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "boards", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	v, ok, err := s.Load(ctx, "boards")
	if err != nil || !ok {
		t.Fatalf("Load: %v %v", ok, err)
	}
	if string(v) != `[{"id":"a"}]` {
		t.Fatalf("value = %s", v)
	}

	if err := s.Save(ctx, "active-board", nil); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	v, ok, err = s.Load(ctx, "active-board")
	if err != nil || !ok || len(v) != 0 {
		t.Fatalf("empty value = %q, %v, %v", v, ok, err)
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != "active-board" || entries[1].Key != "boards" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[1].Size != len(`[{"id":"a"}]`) {
		t.Fatalf("size = %d", entries[1].Size)
	}
}

func TestReopenKeepsData(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, "kanban-notes", []byte("remember")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = s.Close()

	again, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	v, ok, err := again.Load(ctx, "kanban-notes")
	if err != nil || !ok || string(v) != "remember" {
		t.Fatalf("after reopen = %q, %v, %v", v, ok, err)
	}
}
