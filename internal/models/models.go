package models

import "time"

// Condition describes the physical state of a used book.
type Condition string

const (
	ConditionLikeNew    Condition = "Like New"
	ConditionGood       Condition = "Good"
	ConditionFair       Condition = "Fair"
	ConditionAcceptable Condition = "Acceptable"
)

// Valid reports whether c is one of the four known conditions.
func (c Condition) Valid() bool {
	switch c {
	case ConditionLikeNew, ConditionGood, ConditionFair, ConditionAcceptable:
		return true
	}
	return false
}

// ListingStatus is the moderation state of a listing.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected:
		return true
	}
	return false
}

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFulfilled = "fulfilled"
)

// Listing represents a used book offered for sale
type Listing struct {
	ID            string        `db:"id" json:"id"`
	Title         string        `db:"title" json:"title"`
	Author        string        `db:"author" json:"author"`
	Price         int64         `db:"price" json:"price"`
	OriginalPrice float64       `db:"original_price" json:"originalPrice"`
	Condition     Condition     `db:"condition" json:"condition"`
	Category      string        `db:"category" json:"category"`
	Description   string        `db:"description" json:"description,omitempty"`
	ImageURL      string        `db:"image_url" json:"imageUrl,omitempty"`
	SellerEmail   string        `db:"seller_email" json:"sellerEmail"`
	Status        ListingStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
}

// OrderItem represents one book line in an order
type OrderItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Shipping holds the delivery details of an order
type Shipping struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Postal   string `json:"postal"`
	Country  string `json:"country"`
	Notes    string `json:"notes,omitempty"`
}

// Order represents a customer purchase
type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Status    string      `json:"status"`
	Shipping  Shipping    `json:"shipping"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AdminUser is a directory entry synthesized from listing and order
// emails at read time, never stored.
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HistogramBucket is one day of the admin order histogram.
type HistogramBucket struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Identity is the caller identity attached by the token verifier.
type Identity struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}
