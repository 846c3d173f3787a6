package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"booknook-backend/internal/broker"
	"booknook-backend/internal/models"
	"booknook-backend/internal/pricing"
	"booknook-backend/internal/store"
	"booknook-backend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingService handles listing business logic
type ListingService struct {
	listings       store.ListingStore
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewListingService creates a new listing service
func NewListingService(listings store.ListingStore, eventPublisher *broker.EventPublisher) *ListingService {
	return &ListingService{
		listings:       listings,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateListingRequest represents a seller's listing submission
type CreateListingRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	OriginalPrice float64 `json:"originalPrice"`
	Condition     string  `json:"condition"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"imageUrl"`
	SellerEmail   string  `json:"sellerEmail"`
}

// UpdateListingRequest is an admin patch: status and/or price override.
type UpdateListingRequest struct {
	Status *string  `json:"status"`
	Price  *float64 `json:"price"`
}

// CreateListing validates a submission, derives the resale price and
// inserts the listing at the front of the store.
func (s *ListingService) CreateListing(ctx context.Context, req *CreateListingRequest) (*models.Listing, error) {
	ctx, span := util.StartSpan(ctx, "ListingService.CreateListing")
	defer span.End()

	if req.Title == "" || req.Author == "" || req.OriginalPrice == 0 ||
		req.Condition == "" || req.Category == "" || req.SellerEmail == "" {
		util.ListingsRejectedTotal.WithLabelValues("missing_field").Inc()
		return nil, models.ErrMissingField
	}

	condition := models.Condition(req.Condition)
	price, err := pricing.ComputePrice(req.OriginalPrice, condition)
	if err != nil {
		util.ListingsRejectedTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	listing := &models.Listing{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Author:        req.Author,
		Price:         price,
		OriginalPrice: req.OriginalPrice,
		Condition:     condition,
		Category:      req.Category,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		SellerEmail:   req.SellerEmail,
		Status:        models.ListingStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.listings.Insert(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}

	util.ListingsCreatedTotal.Inc()
	s.logger.Info("Listing created",
		zap.String("listing_id", listing.ID),
		zap.String("condition", string(listing.Condition)),
		zap.Int64("price", listing.Price))

	event := &models.ListingCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeListingCreated,
			Timestamp: time.Now(),
		},
		ListingID:   listing.ID,
		Title:       listing.Title,
		Condition:   listing.Condition,
		Price:       listing.Price,
		SellerEmail: listing.SellerEmail,
	}
	if err := s.eventPublisher.PublishListingCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ListingCreated event", zap.Error(err))
	}

	return listing, nil
}

// ListListings returns all listings, most recent first
func (s *ListingService) ListListings(ctx context.Context) ([]models.Listing, error) {
	return s.listings.List(ctx)
}

// UpdateListing applies an admin moderation patch. Unknown statuses are
// rejected rather than silently ignored.
func (s *ListingService) UpdateListing(ctx context.Context, id string, req *UpdateListingRequest) (*models.Listing, error) {
	ctx, span := util.StartSpan(ctx, "ListingService.UpdateListing")
	defer span.End()

	var patch store.ListingPatch

	if req.Status != nil {
		status := models.ListingStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, *req.Status)
		}
		patch.Status = &status
	}

	if req.Price != nil {
		next := *req.Price
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= 0 {
			return nil, fmt.Errorf("%w: override must be a positive number", models.ErrInvalidPrice)
		}
		rounded := pricing.RoundPrice(next)
		patch.Price = &rounded
	}

	listing, err := s.listings.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		util.ListingModerationsTotal.WithLabelValues(string(*patch.Status)).Inc()
	}
	s.logger.Info("Listing updated",
		zap.String("listing_id", listing.ID),
		zap.String("status", string(listing.Status)),
		zap.Int64("price", listing.Price))

	event := &models.ListingUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeListingUpdated,
			Timestamp: time.Now(),
		},
		ListingID:   listing.ID,
		Status:      listing.Status,
		Price:       listing.Price,
		SellerEmail: listing.SellerEmail,
	}
	if err := s.eventPublisher.PublishListingUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ListingUpdated event", zap.Error(err))
	}

	return listing, nil
}
