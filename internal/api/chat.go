package api

import (
	"net/http"
	"strconv"

	"commerce-admin/internal/models"
	"commerce-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// listChatMessages handles the chat poll: messages newer than ?after=.
func (h *Handler) listChatMessages(c *gin.Context) {
	userID, ok := paramID(c, "userID")
	if !ok {
		return
	}

	var afterID int64
	if afterStr := c.Query("after"); afterStr != "" {
		var err error
		afterID, err = strconv.ParseInt(afterStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid after"})
			return
		}
	}

	msgs, err := h.chat.ListMessages(c.Request.Context(), userID, afterID)
	if err != nil {
		respondError(c, err)
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// postChatMessage appends a message to a user's thread. With an admin
// identity header it is an admin reply, otherwise a customer message.
func (h *Handler) postChatMessage(c *gin.Context) {
	userID, ok := paramID(c, "userID")
	if !ok {
		return
	}

	var req service.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	var msg *models.ChatMessage
	var err error
	if adminStr := c.GetHeader("X-Admin-ID"); adminStr != "" {
		adminID, parseErr := strconv.ParseInt(adminStr, 10, 64)
		if parseErr != nil || adminID <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin identity"})
			return
		}
		msg, err = h.chat.PostAdminReply(c.Request.Context(), userID, adminID, &req)
	} else {
		msg, err = h.chat.PostCustomerMessage(c.Request.Context(), userID, &req)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
