package service

import (
	"context"
	"fmt"
	"time"

	"booknook-backend/internal/broker"
	"booknook-backend/internal/models"
	"booknook-backend/internal/store"
	"booknook-backend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order business logic
type OrderService struct {
	orders         store.OrderStore
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders store.OrderStore, eventPublisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		orders:         orders,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateOrderRequest represents a checkout submission
type CreateOrderRequest struct {
	Items    []models.OrderItem `json:"items"`
	Shipping models.Shipping    `json:"shipping"`
}

// CreateOrder validates the cart and shipping details, computes the total
// and inserts the order at the front of the store. Item prices are
// trusted as submitted; no re-validation against listings.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if len(req.Items) == 0 {
		util.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, models.ErrEmptyCart
	}

	required := []struct {
		name  string
		value string
	}{
		{"fullName", req.Shipping.FullName},
		{"phone", req.Shipping.Phone},
		{"email", req.Shipping.Email},
		{"address1", req.Shipping.Address1},
		{"city", req.Shipping.City},
		{"state", req.Shipping.State},
		{"postal", req.Shipping.Postal},
		{"country", req.Shipping.Country},
	}
	for _, field := range required {
		if field.value == "" {
			util.OrdersFailedTotal.WithLabelValues("missing_shipping_field").Inc()
			return nil, fmt.Errorf("%w: %s", models.ErrMissingShippingField, field.name)
		}
	}

	var total int64
	for _, item := range req.Items {
		total += item.Price * int64(item.Quantity)
	}

	order := &models.Order{
		ID:        uuid.New().String(),
		Items:     req.Items,
		Total:     total,
		Status:    models.OrderStatusPending,
		Shipping:  req.Shipping,
		CreatedAt: time.Now(),
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	util.OrderTotalAmount.Observe(float64(order.Total))
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.Int("item_count", len(order.Items)))

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:    order.ID,
		Total:      order.Total,
		ItemCount:  len(order.Items),
		BuyerEmail: order.Shipping.Email,
	}
	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}

	return order, nil
}

// ListOrders returns orders, filtered by shipping email when email is
// non-empty (case-insensitive), most recent first.
func (s *OrderService) ListOrders(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return s.orders.List(ctx)
	}
	return s.orders.ListByEmail(ctx, email)
}
