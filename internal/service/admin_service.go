package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booknook-backend/internal/models"
	"booknook-backend/internal/store"
	"booknook-backend/internal/util"
)

const defaultHistogramDays = 7

// AdminService composes read-only views over the listing and order
// stores. Everything here is a read-time projection; nothing is cached
// or duplicated.
type AdminService struct {
	listings store.ListingStore
	orders   store.OrderStore
}

// NewAdminService creates a new admin service
func NewAdminService(listings store.ListingStore, orders store.OrderStore) *AdminService {
	return &AdminService{
		listings: listings,
		orders:   orders,
	}
}

// ListOrders returns all orders, unfiltered
func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// ListUsers synthesizes the user directory from the distinct lowercased
// seller and buyer emails. Display names are the email local part.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.ListUsers")
	defer span.End()

	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var emails []string
	add := func(email string) {
		email = strings.ToLower(email)
		if email == "" || seen[email] {
			return
		}
		seen[email] = true
		emails = append(emails, email)
	}

	for _, listing := range listings {
		add(listing.SellerEmail)
	}
	for _, order := range orders {
		add(order.Shipping.Email)
	}

	users := make([]models.AdminUser, 0, len(emails))
	for i, email := range emails {
		name, _, _ := strings.Cut(email, "@")
		users = append(users, models.AdminUser{
			ID:    fmt.Sprintf("user-%d", i+1),
			Email: email,
			Name:  name,
		})
	}
	return users, nil
}

// OrderHistogram buckets orders by calendar day over the last days days
// (inclusive of today), in chronological order. Dates use the server's
// local timezone. days <= 0 falls back to the 7-day default.
func (s *AdminService) OrderHistogram(ctx context.Context, days int) ([]models.HistogramBucket, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.OrderHistogram")
	defer span.End()

	if days <= 0 {
		days = defaultHistogramDays
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	buckets := make([]models.HistogramBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -(days - 1 - i))
		key := day.Format("2006-01-02")
		buckets[i] = models.HistogramBucket{
			Date:  key,
			Label: day.Format("Jan 2"),
		}
		index[key] = i
	}

	for _, order := range orders {
		key := order.CreatedAt.Local().Format("2006-01-02")
		if i, ok := index[key]; ok {
			buckets[i].Count++
		}
	}

	return buckets, nil
}
