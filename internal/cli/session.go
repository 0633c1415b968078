package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusboard/internal/board"
	"focusboard/internal/config"
	"focusboard/internal/storage"
	redisstore "focusboard/internal/storage/redis"
	"focusboard/internal/storage/sqlite"
)

// session is an opened board backed by the configured store. Every mutation made through the
// service is persisted before the command returns.
type session struct {
	board *board.Service
	store *storage.Store
}

func (s *session) Close() error {
	return s.store.Close()
}

func openKV(ctx context.Context, app *App) (storage.KV, error) {
	cfg := app.cfg
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.Open(cfg.Storage.Path, app.logger)
	case config.BackendRedis:
		return redisstore.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, app.logger)
	case config.BackendMemory:
		return storage.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func openSession(ctx context.Context, app *App) (*session, error) {
	kv, err := openKV(ctx, app)
	if err != nil {
		return nil, err
	}
	store := storage.New(kv, app.cfg.Storage.Prefix, app.logger)
	st, err := store.Load(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	svc := board.New(st, app.logger)
	if len(st.Boards) == 0 {
		// First start: persist the synthesized default board.
		if err := store.Save(ctx, svc.Snapshot()); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	svc.Subscribe(store.Persist)
	return &session{board: svc, store: store}, nil
}

// withSession opens the board, runs fn and closes the store again.
func withSession(cmd *cobra.Command, app *App, fn func(s *session) error) error {
	s, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()
	if err := fn(s); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
