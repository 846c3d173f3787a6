package store

import (
	"context"
	"testing"
	"time"

	"booknook-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryListingStoreOrdering(t *testing.T) {
	s := NewMemoryListingStore()
	ctx := context.Background()

	first := &models.Listing{ID: "l1", Title: "Dune", Status: models.ListingStatusPending}
	second := &models.Listing{ID: "l2", Title: "Hyperion", Status: models.ListingStatusPending}

	require.NoError(t, s.Insert(ctx, first))
	require.NoError(t, s.Insert(ctx, second))

	listings, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "l2", listings[0].ID, "most recent listing first")
	assert.Equal(t, "l1", listings[1].ID)
}

func TestMemoryListingStoreUpdate(t *testing.T) {
	s := NewMemoryListingStore()
	ctx := context.Background()

	created := time.Now().Add(-time.Hour)
	require.NoError(t, s.Insert(ctx, &models.Listing{
		ID:        "l1",
		Title:     "Dune",
		Price:     140,
		Status:    models.ListingStatusPending,
		CreatedAt: created,
	}))

	status := models.ListingStatusApproved
	updated, err := s.Update(ctx, "l1", ListingPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusApproved, updated.Status)
	assert.Equal(t, int64(140), updated.Price, "price untouched by status patch")
	assert.Equal(t, created, updated.CreatedAt, "createdAt untouched by patch")

	price := int64(99)
	updated, err = s.Update(ctx, "l1", ListingPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(99), updated.Price)
	assert.Equal(t, models.ListingStatusApproved, updated.Status, "status untouched by price patch")
}

func TestMemoryListingStoreUpdateNotFound(t *testing.T) {
	s := NewMemoryListingStore()

	status := models.ListingStatusApproved
	_, err := s.Update(context.Background(), "nonexistent", ListingPatch{Status: &status})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryOrderStoreOrdering(t *testing.T) {
	s := NewMemoryOrderStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, &models.Order{ID: "o1"}))
	require.NoError(t, s.Insert(ctx, &models.Order{ID: "o2"}))

	orders, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID, "most recent order first")
}

func TestMemoryOrderStoreListByEmail(t *testing.T) {
	s := NewMemoryOrderStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, &models.Order{
		ID:       "o1",
		Shipping: models.Shipping{Email: "a@x.com"},
	}))
	require.NoError(t, s.Insert(ctx, &models.Order{
		ID:       "o2",
		Shipping: models.Shipping{Email: "b@y.com"},
	}))

	orders, err := s.ListByEmail(ctx, "A@X.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)

	orders, err = s.ListByEmail(ctx, "nobody@z.com")
	require.NoError(t, err)
	assert.Empty(t, orders)
}
