package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlobStoreUnreachable(t *testing.T) {
	store, err := NewBlobStore("127.0.0.1:1", "", 0)

	assert.Nil(t, store)
	assert.ErrorContains(t, err, "connecting to redis at 127.0.0.1:1")
}

func newTestStore(t *testing.T) (*BlobStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewBlobStoreFromClient(client), server
}

func TestBlobStoreGetAbsentKey(t *testing.T) {
	store, _ := newTestStore(t)

	blob, ok, err := store.Get(context.Background(), "pendingItems")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, blob)
}

func TestBlobStoreSetThenGet(t *testing.T) {
	store, server := newTestStore(t)
	ctx := context.Background()
	blob := []byte(`[{"id":"item-1"}]`)

	require.NoError(t, store.Set(ctx, "approvedItems", blob))

	stored, err := server.Get("itemshare:approvedItems")
	require.NoError(t, err)
	assert.Equal(t, string(blob), stored)

	got, ok, err := store.Get(ctx, "approvedItems")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, blob, got)
}

func TestBlobStorePingFollowsServer(t *testing.T) {
	store, server := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	server.Close()
	assert.Error(t, store.Ping(ctx))

	_, _, err := store.Get(ctx, "pendingItems")
	assert.ErrorContains(t, err, "reading blob pendingItems")
}
