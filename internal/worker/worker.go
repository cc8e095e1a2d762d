package worker

import (
	"context"
	"log"

	"commerce-admin/internal/broker"
	"commerce-admin/internal/models"
	"commerce-admin/internal/service"
)

// NotificationWorker consumes order events and turns them into admin feed
// entries. adminID is the admin identity the feed is keyed by; it comes from
// configuration, not ambient state.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(
	consumer *broker.Consumer,
	notifications *service.NotificationService,
	adminID int64,
) *NotificationWorker {
	eventHandler := broker.NewEventHandler()

	eventHandler.OnOrderCreated(func(ctx context.Context, event *models.OrderCreatedEvent) error {
		return notifications.HandleOrderCreated(ctx, adminID, event)
	})
	eventHandler.OnOrderStatusChanged(func(ctx context.Context, event *models.OrderStatusChangedEvent) error {
		return notifications.HandleStatusChanged(ctx, adminID, event)
	})
	eventHandler.OnPaymentStatusChanged(func(ctx context.Context, event *models.PaymentStatusChangedEvent) error {
		return notifications.HandlePaymentChanged(ctx, adminID, event)
	})

	return &NotificationWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}
