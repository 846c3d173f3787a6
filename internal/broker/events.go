package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"booknook-backend/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events. A nil *EventPublisher
// is a no-op so the service runs without Kafka configured.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishListingCreated publishes a ListingCreated event
func (ep *EventPublisher) PublishListingCreated(ctx context.Context, event *models.ListingCreatedEvent) error {
	if ep == nil {
		return nil
	}
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("listing-%s", event.ListingID), event)
}

// PublishListingUpdated publishes a ListingUpdated event
func (ep *EventPublisher) PublishListingUpdated(ctx context.Context, event *models.ListingUpdatedEvent) error {
	if ep == nil {
		return nil
	}
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("listing-%s", event.ListingID), event)
}

// PublishOrderCreated publishes an OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	if ep == nil {
		return nil
	}
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("order-%s", event.OrderID), event)
}

// EventHandler routes incoming marketplace events to registered callbacks
type EventHandler struct {
	onListingCreated func(context.Context, *models.ListingCreatedEvent) error
	onListingUpdated func(context.Context, *models.ListingUpdatedEvent) error
	onOrderCreated   func(context.Context, *models.OrderCreatedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnListingCreated registers a handler for ListingCreated events
func (eh *EventHandler) OnListingCreated(handler func(context.Context, *models.ListingCreatedEvent) error) {
	eh.onListingCreated = handler
}

// OnListingUpdated registers a handler for ListingUpdated events
func (eh *EventHandler) OnListingUpdated(handler func(context.Context, *models.ListingUpdatedEvent) error) {
	eh.onListingUpdated = handler
}

// OnOrderCreated registers a handler for OrderCreated events
func (eh *EventHandler) OnOrderCreated(handler func(context.Context, *models.OrderCreatedEvent) error) {
	eh.onOrderCreated = handler
}

// HandleMessage routes messages to the appropriate handler
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeListingCreated:
		if eh.onListingCreated != nil {
			var event models.ListingCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ListingCreated event: %w", err)
			}
			return eh.onListingCreated(ctx, &event)
		}

	case models.EventTypeListingUpdated:
		if eh.onListingUpdated != nil {
			var event models.ListingUpdatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ListingUpdated event: %w", err)
			}
			return eh.onListingUpdated(ctx, &event)
		}

	case models.EventTypeOrderCreated:
		if eh.onOrderCreated != nil {
			var event models.OrderCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderCreated event: %w", err)
			}
			return eh.onOrderCreated(ctx, &event)
		}
	}

	return nil
}
