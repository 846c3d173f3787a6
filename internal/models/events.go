package models

import "time"

// Event types published to the marketplace topic
const (
	EventTypeListingCreated = "LISTING_CREATED"
	EventTypeListingUpdated = "LISTING_UPDATED"
	EventTypeOrderCreated   = "ORDER_CREATED"
)

// BaseEvent contains common event fields
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ListingCreatedEvent is published when a seller submits a new listing
type ListingCreatedEvent struct {
	BaseEvent
	ListingID   string    `json:"listing_id"`
	Title       string    `json:"title"`
	Condition   Condition `json:"condition"`
	Price       int64     `json:"price"`
	SellerEmail string    `json:"seller_email"`
}

// ListingUpdatedEvent is published when an administrator moderates a
// listing (status change and/or price override)
type ListingUpdatedEvent struct {
	BaseEvent
	ListingID   string        `json:"listing_id"`
	Status      ListingStatus `json:"status"`
	Price       int64         `json:"price"`
	SellerEmail string        `json:"seller_email"`
}

// OrderCreatedEvent is published when a buyer places an order
type OrderCreatedEvent struct {
	BaseEvent
	OrderID    string `json:"order_id"`
	Total      int64  `json:"total"`
	ItemCount  int    `json:"item_count"`
	BuyerEmail string `json:"buyer_email"`
}
