package item

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"itemshare/domain"
)

var testNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

var testCategories = []string{"Tools", "Books", "Sports Equipment", "Kitchen", "Electronics", "Garden", "Other"}

const testImage = "data:image/png;base64,iVBORw0KGgo="

func newTestValidator() *Validator {
	return NewValidator(testCategories, 1024)
}

func sequenceIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func newTestStore(t *testing.T, blobs BlobStore, opts ...StoreOption) *Store {
	t.Helper()

	if blobs == nil {
		blobs = NewMemoryBlobStore()
	}

	opts = append([]StoreOption{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(sequenceIDs()),
	}, opts...)

	return NewStore(blobs, newTestValidator(), opts...)
}

func validDraft(title, category string) domain.Draft {
	return domain.Draft{
		Title:       title,
		Description: "Lent for a weekend",
		Category:    category,
		Owner:       "Sarah Johnson",
		Image:       testImage,
	}
}

// flakyBlobStore wraps a MemoryBlobStore and fails selected operations.
type flakyBlobStore struct {
	*MemoryBlobStore
	failGet bool
	failSet map[string]bool
	sets    []string
}

func newFlakyBlobStore() *flakyBlobStore {
	return &flakyBlobStore{MemoryBlobStore: NewMemoryBlobStore(), failSet: map[string]bool{}}
}

var errStorageDown = errors.New("storage down")

func (f *flakyBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failGet {
		return nil, false, errStorageDown
	}
	return f.MemoryBlobStore.Get(ctx, key)
}

func (f *flakyBlobStore) Set(ctx context.Context, key string, blob []byte) error {
	f.sets = append(f.sets, key)
	if f.failSet[key] {
		return errStorageDown
	}
	return f.MemoryBlobStore.Set(ctx, key, blob)
}
