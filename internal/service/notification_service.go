package service

import (
	"context"
	"fmt"
	"time"

	"commerce-admin/internal/models"
	"commerce-admin/internal/redisclient"
	"commerce-admin/internal/store"
	"commerce-admin/internal/util"

	"go.uber.org/zap"
)

const unreadCountTTL = 30 * time.Second

// NotificationService maintains the admin notification feed. The unread
// count is cached in Redis and invalidated on every write.
type NotificationService struct {
	store  *store.Store
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(store *store.Store, cache *redisclient.Client) *NotificationService {
	return &NotificationService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// Notify inserts a feed entry for an admin and drops the cached count.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	util.NotificationsCreatedTotal.Inc()
	if s.cache != nil {
		if err := s.cache.InvalidateUnreadCount(ctx, n.AdminID); err != nil {
			s.logger.Warn("Failed to invalidate unread count cache",
				zap.Int64("admin_id", n.AdminID), zap.Error(err))
		}
	}
	return nil
}

// List returns an admin's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, adminID int64) ([]models.Notification, error) {
	return s.store.ListNotifications(ctx, adminID)
}

// UnreadCount returns an admin's unread notification count, served from
// cache when fresh.
func (s *NotificationService) UnreadCount(ctx context.Context, adminID int64) (int64, error) {
	if s.cache != nil {
		if count, ok, err := s.cache.GetUnreadCount(ctx, adminID); err == nil && ok {
			return count, nil
		}
	}

	count, err := s.store.CountUnreadNotifications(ctx, adminID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetUnreadCount(ctx, adminID, count, unreadCountTTL); err != nil {
			s.logger.Warn("Failed to cache unread count",
				zap.Int64("admin_id", adminID), zap.Error(err))
		}
	}
	return count, nil
}

// MarkRead marks one notification read and drops the cached count.
func (s *NotificationService) MarkRead(ctx context.Context, id, adminID int64) error {
	if err := s.store.MarkNotificationRead(ctx, id, adminID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateUnreadCount(ctx, adminID); err != nil {
			s.logger.Warn("Failed to invalidate unread count cache",
				zap.Int64("admin_id", adminID), zap.Error(err))
		}
	}
	return nil
}

// HandleOrderCreated turns an OrderCreated event into a feed entry.
func (s *NotificationService) HandleOrderCreated(ctx context.Context, adminID int64, event *models.OrderCreatedEvent) error {
	return s.Notify(ctx, &models.Notification{
		AdminID: adminID,
		Kind:    models.NotificationOrderPlaced,
		Body:    fmt.Sprintf("New order #%d placed for %d cents", event.OrderID, event.TotalAmount),
		OrderID: &event.OrderID,
	})
}

// HandleStatusChanged turns an OrderStatusChanged event into a feed entry.
func (s *NotificationService) HandleStatusChanged(ctx context.Context, adminID int64, event *models.OrderStatusChangedEvent) error {
	return s.Notify(ctx, &models.Notification{
		AdminID: adminID,
		Kind:    models.NotificationStatusChanged,
		Body:    fmt.Sprintf("Order #%d moved from %s to %s", event.OrderID, event.From, event.To),
		OrderID: &event.OrderID,
	})
}

// HandlePaymentChanged turns a PaymentStatusChanged event into a feed entry
// when the order became paid.
func (s *NotificationService) HandlePaymentChanged(ctx context.Context, adminID int64, event *models.PaymentStatusChangedEvent) error {
	if event.To != models.PaymentStatusPaid {
		return nil
	}
	return s.Notify(ctx, &models.Notification{
		AdminID: adminID,
		Kind:    models.NotificationOrderPaid,
		Body:    fmt.Sprintf("Order #%d paid: %d cents", event.OrderID, event.Amount),
		OrderID: &event.OrderID,
	})
}
