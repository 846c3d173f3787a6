package worker

import (
	"context"
	"time"

	"booknook-backend/internal/broker"
	"booknook-backend/internal/models"
	"booknook-backend/internal/redisclient"
	"booknook-backend/internal/util"

	"go.uber.org/zap"
)

const eventDedupTTL = 24 * time.Hour

// NotificationWorker consumes marketplace events and emits buyer and
// seller notifications. Delivery is a structured log line; a mail or
// push integration would hang off the same handlers.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	redis        *redisclient.Client
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker. redis may be
// nil, which disables event dedup.
func NewNotificationWorker(consumer *broker.Consumer, redis *redisclient.Client) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		redis:    redis,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnListingCreated(w.handleListingCreated)
	eventHandler.OnListingUpdated(w.handleListingUpdated)
	eventHandler.OnOrderCreated(w.handleOrderCreated)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}

// firstDelivery reports whether the event has not been handled before.
// Without Redis every delivery counts as the first.
func (w *NotificationWorker) firstDelivery(ctx context.Context, eventID string) bool {
	if w.redis == nil {
		return true
	}
	first, err := w.redis.MarkEventProcessed(ctx, eventID, eventDedupTTL)
	if err != nil {
		w.logger.Warn("Event dedup check failed", zap.Error(err))
		return true
	}
	return first
}

func (w *NotificationWorker) handleListingCreated(ctx context.Context, event *models.ListingCreatedEvent) error {
	if !w.firstDelivery(ctx, event.EventID) {
		return nil
	}

	w.logger.Info("Notify admin: listing awaiting review",
		zap.String("listing_id", event.ListingID),
		zap.String("title", event.Title),
		zap.String("seller_email", event.SellerEmail))
	return nil
}

func (w *NotificationWorker) handleListingUpdated(ctx context.Context, event *models.ListingUpdatedEvent) error {
	if !w.firstDelivery(ctx, event.EventID) {
		return nil
	}

	w.logger.Info("Notify seller: listing moderated",
		zap.String("listing_id", event.ListingID),
		zap.String("status", string(event.Status)),
		zap.String("seller_email", event.SellerEmail))
	return nil
}

func (w *NotificationWorker) handleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	if !w.firstDelivery(ctx, event.EventID) {
		return nil
	}

	w.logger.Info("Notify buyer: order received",
		zap.String("order_id", event.OrderID),
		zap.Int64("total", event.Total),
		zap.String("buyer_email", event.BuyerEmail))
	return nil
}
