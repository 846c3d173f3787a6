package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"booknook-backend/internal/models"
)

// MemoryListingStore keeps listings in a mutex-guarded slice,
// most recent first.
type MemoryListingStore struct {
	mu       sync.RWMutex
	listings []models.Listing
}

// NewMemoryListingStore creates an empty in-memory listing store
func NewMemoryListingStore() *MemoryListingStore {
	return &MemoryListingStore{}
}

// Insert adds a listing at the front of the collection
func (s *MemoryListingStore) Insert(_ context.Context, listing *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings = append([]models.Listing{*listing}, s.listings...)
	return nil
}

// List returns a copy of all listings, most recent first
func (s *MemoryListingStore) List(_ context.Context) ([]models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Listing, len(s.listings))
	copy(out, s.listings)
	return out, nil
}

// Update applies a patch to the listing with the given id
func (s *MemoryListingStore) Update(_ context.Context, id string, patch ListingPatch) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.listings {
		if s.listings[i].ID != id {
			continue
		}
		if patch.Status != nil {
			s.listings[i].Status = *patch.Status
		}
		if patch.Price != nil {
			s.listings[i].Price = *patch.Price
		}
		updated := s.listings[i]
		return &updated, nil
	}

	return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
}

// MemoryOrderStore keeps orders in a mutex-guarded slice,
// most recent first.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewMemoryOrderStore creates an empty in-memory order store
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{}
}

// Insert adds an order at the front of the collection
func (s *MemoryOrderStore) Insert(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append([]models.Order{*order}, s.orders...)
	return nil
}

// List returns a copy of all orders, most recent first
func (s *MemoryOrderStore) List(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// ListByEmail returns orders whose shipping email matches case-insensitively
func (s *MemoryOrderStore) ListByEmail(_ context.Context, email string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := strings.ToLower(email)
	var out []models.Order
	for _, order := range s.orders {
		if strings.ToLower(order.Shipping.Email) == want {
			out = append(out, order)
		}
	}
	return out, nil
}
