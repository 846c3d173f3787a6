// Package store owns the listing and order collections. The in-memory
// implementation is the default; a Postgres implementation backs the same
// interfaces when DATABASE_URL is configured.
package store

import (
	"context"

	"booknook-backend/internal/models"
)

// ListingPatch is a partial update applied by an administrator.
// Nil fields are left untouched.
type ListingPatch struct {
	Status *models.ListingStatus
	Price  *int64
}

// ListingStore is the listing collection. Listings are kept
// most-recent-first.
type ListingStore interface {
	// Insert adds a listing at the front of the collection.
	Insert(ctx context.Context, listing *models.Listing) error
	// List returns all listings, most recent first.
	List(ctx context.Context) ([]models.Listing, error)
	// Update applies a patch to the listing with the given id and returns
	// the updated listing. Returns models.ErrNotFound for unknown ids.
	Update(ctx context.Context, id string, patch ListingPatch) (*models.Listing, error)
}

// OrderStore is the order collection. Orders are immutable after
// creation and kept most-recent-first.
type OrderStore interface {
	// Insert adds an order at the front of the collection.
	Insert(ctx context.Context, order *models.Order) error
	// List returns all orders, most recent first.
	List(ctx context.Context) ([]models.Order, error)
	// ListByEmail returns orders whose shipping email matches
	// case-insensitively.
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
}
