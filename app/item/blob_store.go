package item

import (
	"context"
	"sync"
)

// BlobStore is the persistence collaborator of the Store: a synchronous
// key/value store of opaque blobs. Get reports absent keys with ok=false.
type BlobStore interface {
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)
	Set(ctx context.Context, key string, blob []byte) error
}

// Pinger is implemented by blob stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MemoryBlobStore keeps blobs in process memory. Nothing survives a restart.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (m *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

func (m *MemoryBlobStore) Set(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (m *MemoryBlobStore) Ping(ctx context.Context) error {
	return nil
}
