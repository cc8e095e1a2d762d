package service

import (
	"context"
	"fmt"

	"commerce-admin/internal/models"
	"commerce-admin/internal/store"
	"commerce-admin/internal/util"

	"go.uber.org/zap"
)

// ChatService handles customer support messages. Messages are plain
// persisted rows; clients poll for anything newer than the last id they saw.
type ChatService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(store *store.Store) *ChatService {
	return &ChatService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// PostMessageRequest represents a new chat message
type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// PostCustomerMessage appends a customer message to the user's thread.
func (s *ChatService) PostCustomerMessage(ctx context.Context, userID int64, req *PostMessageRequest) (*models.ChatMessage, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		UserID: userID,
		Body:   req.Body,
	}
	if err := s.store.CreateChatMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to persist chat message: %w", err)
	}

	util.ChatMessagesTotal.WithLabelValues("customer").Inc()
	return msg, nil
}

// PostAdminReply appends an admin reply and marks the thread's customer
// messages read.
func (s *ChatService) PostAdminReply(ctx context.Context, userID, adminID int64, req *PostMessageRequest) (*models.ChatMessage, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		UserID:    userID,
		AdminID:   &adminID,
		Body:      req.Body,
		FromAdmin: true,
	}
	if err := s.store.CreateChatMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to persist chat message: %w", err)
	}

	if err := s.store.MarkThreadRead(ctx, userID); err != nil {
		s.logger.Error("Failed to mark thread read",
			zap.Int64("user_id", userID), zap.Error(err))
	}

	util.ChatMessagesTotal.WithLabelValues("admin").Inc()
	return msg, nil
}

// ListMessages returns a user's messages newer than afterID, oldest first.
func (s *ChatService) ListMessages(ctx context.Context, userID, afterID int64) ([]models.ChatMessage, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListChatMessages(ctx, userID, afterID)
}
