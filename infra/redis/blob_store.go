package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "itemshare:"

// BlobStore keeps each collection under its own Redis string key.
type BlobStore struct {
	client *redis.Client
}

func NewBlobStore(addr, password string, db int) (*BlobStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}

	zap.L().Info("Redis blob store connected", zap.String("addr", addr), zap.Int("db", db))

	return NewBlobStoreFromClient(client), nil
}

func NewBlobStoreFromClient(client *redis.Client) *BlobStore {
	return &BlobStore{client: client}
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading blob %s: %w", key, err)
	}
	return value, true, nil
}

func (s *BlobStore) Set(ctx context.Context, key string, blob []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, blob, 0).Err(); err != nil {
		return fmt.Errorf("writing blob %s: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *BlobStore) Close() error {
	return s.client.Close()
}
