package api

import (
	"net/http"

	"commerce-admin/internal/models"

	"github.com/gin-gonic/gin"
)

// listNotifications returns the calling admin's feed
func (h *Handler) listNotifications(c *gin.Context) {
	admin, ok := adminID(c)
	if !ok {
		return
	}

	notifications, err := h.notifications.List(c.Request.Context(), admin)
	if err != nil {
		respondError(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// unreadNotificationCount returns the calling admin's unread count
func (h *Handler) unreadNotificationCount(c *gin.Context) {
	admin, ok := adminID(c)
	if !ok {
		return
	}

	count, err := h.notifications.UnreadCount(c.Request.Context(), admin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// markNotificationRead marks one feed entry read
func (h *Handler) markNotificationRead(c *gin.Context) {
	admin, ok := adminID(c)
	if !ok {
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), id, admin); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
