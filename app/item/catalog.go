package item

import (
	"context"
	"strings"

	"itemshare/domain"
)

type CatalogReader interface {
	ListApproved(ctx context.Context) ([]domain.Item, error)
	ListAll(ctx context.Context) ([]domain.Item, error)
}

// Query narrows the catalog. An empty Category or domain.AllCategories
// matches every category.
type Query struct {
	Search   string
	Category string
}

// Catalog is the read-only public view over approved items.
type Catalog struct {
	store CatalogReader
}

func NewCatalog(store CatalogReader) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) List(ctx context.Context, q Query) ([]domain.Item, error) {
	items, err := c.store.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(items, q), nil
}

// Get returns an item only while it is visible in the catalog.
func (c *Catalog) Get(ctx context.Context, id string) (domain.Item, error) {
	items, err := c.store.ListApproved(ctx)
	if err != nil {
		return domain.Item{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Item{}, &domain.NotFoundError{ID: id}
}

// Categories lists the categories offered by the filter, taken from every
// known item including pending ones.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	items, err := c.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(items), nil
}

// Filter keeps items whose title contains q.Search (case-insensitive) and
// whose category matches q.Category. Order is preserved.
func Filter(items []domain.Item, q Query) []domain.Item {
	search := strings.ToLower(q.Search)
	filterCategory := q.Category != "" && q.Category != domain.AllCategories

	result := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if !strings.Contains(strings.ToLower(item.Title), search) {
			continue
		}
		if filterCategory && item.Category != q.Category {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Categories returns the distinct categories of items in first-seen order.
func Categories(items []domain.Item) []string {
	seen := make(map[string]struct{}, len(items))
	categories := make([]string, 0)
	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}
