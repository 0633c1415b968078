package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := New(client, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestLoadMissingKey(t *testing.T) {
	s, _ := newTestStore(t)
	v, ok, err := s.Load(context.Background(), "focusboard:boards")
	if err != nil || ok || v != nil {
		t.Fatalf("Load missing = %q, %v, %v", v, ok, err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "focusboard:active-board", []byte("b1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := mr.Get("focusboard:active-board")
	if err != nil || got != "b1" {
		t.Fatalf("raw value = %q, %v", got, err)
	}
	if ttl := mr.TTL("focusboard:active-board"); ttl != 0 {
		t.Fatalf("ttl = %v, want none", ttl)
	}

	v, ok, err := s.Load(ctx, "focusboard:active-board")
	if err != nil || !ok || string(v) != "b1" {
		t.Fatalf("Load = %q, %v, %v", v, ok, err)
	}
}

func TestOpen(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	s, err := Open(context.Background(), mr.Addr(), "", 0, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	s2, err := Open(context.Background(), "redis://"+mr.Addr()+"/0", "", 0, nil)
	if err != nil {
		t.Fatalf("Open url: %v", err)
	}
	defer s2.Close()

	addr := mr.Addr()
	mr.Close()
	if _, err := Open(context.Background(), addr, "", 0, nil); err == nil {
		t.Fatalf("expected ping failure once the server is gone")
	}
}
