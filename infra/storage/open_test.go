package storage

import (
	"context"
	"testing"

	"itemshare/app/item"
	"itemshare/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	store, closeStore, err := Open(&config.AppConfig{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)
	defer closeStore()

	assert.IsType(t, &item.MemoryBlobStore{}, store)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	blob, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), blob)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, _, err := Open(&config.AppConfig{StoreDriver: "floppy"})
	assert.EqualError(t, err, `unknown store driver "floppy"`)
}

func TestOpenS3RequiresBucket(t *testing.T) {
	_, _, err := Open(&config.AppConfig{StoreDriver: config.StoreDriverS3})
	assert.Error(t, err)
}

type unpingable struct{ item.BlobStore }

func TestNewItemStoreSeedsBaseline(t *testing.T) {
	ctx := context.Background()
	cfg := &config.AppConfig{Categories: "Tools, Garden", SeedBaseline: true}

	store, validator := NewItemStore(cfg, item.NewMemoryBlobStore())
	assert.Equal(t, []string{"Tools", "Garden"}, validator.Categories())

	approved, err := store.ListApproved(ctx)
	require.NoError(t, err)
	assert.Len(t, approved, 6)

	cfg.SeedBaseline = false
	store, _ = NewItemStore(cfg, item.NewMemoryBlobStore())
	approved, err = store.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, approved)
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, HealthCheck(item.NewMemoryBlobStore())(ctx))
	assert.NoError(t, HealthCheck(unpingable{item.NewMemoryBlobStore()})(ctx))
}

func TestIsProcessLocal(t *testing.T) {
	assert.True(t, IsProcessLocal(config.StoreDriverMemory))
	assert.True(t, IsProcessLocal(""))

	for _, driver := range []string{config.StoreDriverPostgres, config.StoreDriverRedis, config.StoreDriverS3} {
		assert.False(t, IsProcessLocal(driver), driver)
	}
}
