// Package redis stores FocusBoard blobs in a Redis instance.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Store is a storage.KV over a Redis client. Keys never expire.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// New wraps an existing client.
func New(client *redis.Client, logger *slog.Logger) *Store {
	if client == nil {
		panic("redis.New: client is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, logger: logger}
}

// Open dials addr, which may be a redis:// URL or a bare host:port, and pings it.
func Open(ctx context.Context, addr, password string, db int, logger *slog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr, Password: password, DB: db}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return New(client, logger), nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return data, true, nil
}

func (s *Store) Save(ctx context.Context, key string, blob []byte) error {
	if err := s.client.Set(ctx, key, blob, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.logger.Debug("redis key saved", slog.String("key", key), slog.Int("bytes", len(blob)))
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
