package store

import (
	"context"

	"commerce-admin/internal/models"
)

// CreateNotification persists an admin feed entry
func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (admin_id, kind, body, order_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, n, query, n.AdminID, n.Kind, n.Body, n.OrderID)
}

// ListNotifications retrieves an admin's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, adminID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.SelectContext(ctx, &notifications,
		"SELECT * FROM notifications WHERE admin_id = $1 ORDER BY created_at DESC", adminID)
	return notifications, err
}

// CountUnreadNotifications counts an admin's unread notifications.
func (s *Store) CountUnreadNotifications(ctx context.Context, adminID int64) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM notifications WHERE admin_id = $1 AND read_at IS NULL", adminID)
	return n, err
}

// MarkNotificationRead marks one of the admin's notifications read.
func (s *Store) MarkNotificationRead(ctx context.Context, id, adminID int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read_at = NOW() WHERE id = $1 AND admin_id = $2",
		id, adminID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.NotFoundErr("notification", id)
	}
	return nil
}
