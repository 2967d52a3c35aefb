package item

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"itemshare/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Blob keys of the two persisted collections.
const (
	PendingItemsKey  = "pendingItems"
	ApprovedItemsKey = "approvedItems"
)

// Store owns the canonical item collections. Every operation reads the
// collections from the blob store, so several processes can share one
// backend; writes go through the same blob store before a call returns.
type Store struct {
	mu        sync.Mutex
	blobs     BlobStore
	validator *Validator
	baseline  []domain.Item
	now       func() time.Time
	newID     func() string
}

type StoreOption func(*Store)

// WithBaseline prepends a static seed catalog to the approved items.
// Baseline items are never written to the blob store.
func WithBaseline(items []domain.Item) StoreOption {
	return func(s *Store) {
		s.baseline = append([]domain.Item(nil), items...)
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		s.newID = newID
	}
}

func NewStore(blobs BlobStore, validator *Validator, opts ...StoreOption) *Store {
	s := &Store{
		blobs:     blobs,
		validator: validator,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePending validates the draft and records it as a new pending item.
func (s *Store) CreatePending(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	if err := s.validator.Struct(draft); err != nil {
		return domain.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pending, approved, err := s.load(ctx)
	if err != nil {
		return domain.Item{}, err
	}

	item := domain.Item{
		ID:          s.uniqueID(pending, approved),
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Image:       draft.Image,
		Owner:       draft.Owner,
		Available:   true,
		Status:      domain.StatusPending,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.save(ctx, PendingItemsKey, append(pending, item)); err != nil {
		return domain.Item{}, err
	}

	zap.L().Info("Item submitted",
		zap.String("itemId", item.ID),
		zap.String("category", item.Category),
	)

	return item, nil
}

// ListPending returns pending items in submission order.
func (s *Store) ListPending(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(ctx, PendingItemsKey)
}

// ListApproved returns the baseline followed by approved submissions in
// approval order.
func (s *Store) ListApproved(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	approved, err := s.read(ctx, ApprovedItemsKey)
	if err != nil {
		return nil, err
	}

	return append(slices.Clone(s.baseline), approved...), nil
}

// ListAll returns every known item: baseline, approved, then pending.
func (s *Store) ListAll(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, approved, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	all := slices.Clone(s.baseline)
	all = append(all, approved...)
	return append(all, pending...), nil
}

// Get finds an item in any collection.
func (s *Store) Get(ctx context.Context, id string) (domain.Item, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return domain.Item{}, err
	}

	for _, item := range all {
		if item.ID == id {
			return item, nil
		}
	}

	return domain.Item{}, &domain.NotFoundError{ID: id}
}

// Approve moves a pending item to the approved collection.
func (s *Store) Approve(ctx context.Context, id string) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, approved, err := s.load(ctx)
	if err != nil {
		return domain.Item{}, err
	}

	idx := indexOf(pending, id)
	if idx < 0 {
		return domain.Item{}, &domain.NotFoundError{ID: id}
	}

	item := pending[idx]
	item.Status = domain.StatusApproved

	remaining := slices.Delete(slices.Clone(pending), idx, idx+1)

	// Approved is written first: a failure in between leaves the item
	// pending, and the previous approved blob is restored.
	if err := s.save(ctx, ApprovedItemsKey, append(approved, item)); err != nil {
		return domain.Item{}, err
	}
	if err := s.save(ctx, PendingItemsKey, remaining); err != nil {
		if rollbackErr := s.save(ctx, ApprovedItemsKey, approved); rollbackErr != nil {
			zap.L().Error("Failed to roll back approved items",
				zap.String("itemId", id),
				zap.Error(rollbackErr),
			)
		}
		return domain.Item{}, err
	}

	zap.L().Info("Item approved", zap.String("itemId", id))

	return item, nil
}

// Reject discards a pending item. No record of the rejection is kept.
func (s *Store) Reject(ctx context.Context, id string) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.read(ctx, PendingItemsKey)
	if err != nil {
		return domain.Item{}, err
	}

	idx := indexOf(pending, id)
	if idx < 0 {
		return domain.Item{}, &domain.NotFoundError{ID: id}
	}

	item := pending[idx]
	item.Status = domain.StatusRejected

	if err := s.save(ctx, PendingItemsKey, slices.Delete(slices.Clone(pending), idx, idx+1)); err != nil {
		return domain.Item{}, err
	}

	zap.L().Info("Item rejected", zap.String("itemId", id))

	return item, nil
}

func (s *Store) load(ctx context.Context) (pending, approved []domain.Item, err error) {
	pending, err = s.read(ctx, PendingItemsKey)
	if err != nil {
		return nil, nil, err
	}
	approved, err = s.read(ctx, ApprovedItemsKey)
	if err != nil {
		return nil, nil, err
	}
	return pending, approved, nil
}

// read decodes one collection. Absent or undecodable blobs are an empty
// collection; only blob store failures are errors.
func (s *Store) read(ctx context.Context, key string) ([]domain.Item, error) {
	blob, ok, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read", Key: key, Err: err}
	}
	if !ok || len(blob) == 0 {
		return []domain.Item{}, nil
	}

	var items []domain.Item
	if err := json.Unmarshal(blob, &items); err != nil {
		zap.L().Warn("Discarding undecodable item collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return []domain.Item{}, nil
	}
	if items == nil {
		items = []domain.Item{}
	}

	return items, nil
}

func (s *Store) save(ctx context.Context, key string, items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}

	blob, err := json.Marshal(items)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Key: key, Err: err}
	}

	if err := s.blobs.Set(ctx, key, blob); err != nil {
		return &domain.PersistenceError{Op: "write", Key: key, Err: err}
	}

	return nil
}

func (s *Store) uniqueID(collections ...[]domain.Item) string {
	for {
		id := s.newID()
		if indexOf(s.baseline, id) >= 0 {
			continue
		}

		taken := false
		for _, items := range collections {
			if indexOf(items, id) >= 0 {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

func indexOf(items []domain.Item, id string) int {
	return slices.IndexFunc(items, func(item domain.Item) bool {
		return item.ID == id
	})
}
