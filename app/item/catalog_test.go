package item

import (
	"context"
	"testing"

	"itemshare/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	items := []domain.Item{
		{ID: "1", Title: "Electric Drill", Category: "Tools"},
		{ID: "2", Title: "Garden Rake", Category: "Garden"},
	}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"no filter", Query{}, []string{"1", "2"}},
		{"all sentinel", Query{Category: domain.AllCategories}, []string{"1", "2"}},
		{"search is case-insensitive", Query{Search: "drill"}, []string{"1"}},
		{"search upper case", Query{Search: "RAKE"}, []string{"2"}},
		{"category", Query{Category: "Garden"}, []string{"2"}},
		{"category is exact", Query{Category: "garden"}, []string{}},
		{"no match", Query{Search: "x"}, []string{}},
		{"search and category compose", Query{Search: "drill", Category: "Garden"}, []string{}},
		{"search matches title only", Query{Search: "Tools"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.query)

			ids := make([]string, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCategories(t *testing.T) {
	items := []domain.Item{
		{Category: "Tools"},
		{Category: "Garden"},
		{Category: "Tools"},
	}

	assert.Equal(t, []string{"Tools", "Garden"}, Categories(items))
	assert.Empty(t, Categories(nil))
}

func TestCatalogReadsThroughStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil, WithBaseline(domain.Baseline()))
	catalog := NewCatalog(store)

	pending, _ := store.CreatePending(ctx, validDraft("Soldering Iron", "Electronics"))
	approved, _ := store.CreatePending(ctx, validDraft("Hedge Trimmer", "Garden"))
	_, err := store.Approve(ctx, approved.ID)
	require.NoError(t, err)

	items, err := catalog.List(ctx, Query{Category: "Garden"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Garden Rake", items[0].Title)
	assert.Equal(t, "Hedge Trimmer", items[1].Title)

	_, err = catalog.Get(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "pending items are not visible")

	got, err := catalog.Get(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)

	// pending submissions contribute categories with no visible item
	categories, err := catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tools", "Garden", "Sports Equipment", "Kitchen", "Books", "Electronics"}, categories)

	items, _ = catalog.List(ctx, Query{Category: "Electronics"})
	assert.Empty(t, items)
}
