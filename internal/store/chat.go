package store

import (
	"context"

	"commerce-admin/internal/models"
)

// CreateChatMessage persists a chat message row
func (s *Store) CreateChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (user_id, admin_id, body, from_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, msg, query,
		msg.UserID, msg.AdminID, msg.Body, msg.FromAdmin)
}

// ListChatMessages retrieves a user's messages newer than afterID, oldest
// first. afterID = 0 returns the whole thread. This is the poll query.
func (s *Store) ListChatMessages(ctx context.Context, userID, afterID int64) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := s.db.SelectContext(ctx, &msgs,
		"SELECT * FROM chat_messages WHERE user_id = $1 AND id > $2 ORDER BY id", userID, afterID)
	return msgs, err
}

// MarkThreadRead marks all unread customer messages in a user's thread read.
func (s *Store) MarkThreadRead(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE chat_messages SET read_at = NOW() WHERE user_id = $1 AND from_admin = FALSE AND read_at IS NULL",
		userID)
	return err
}

// CountUnreadChatMessages counts unread customer messages across all threads.
func (s *Store) CountUnreadChatMessages(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM chat_messages WHERE from_admin = FALSE AND read_at IS NULL")
	return n, err
}
