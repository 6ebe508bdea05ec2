package handlers

import (
	"net/http"

	"carelink/internal/store"

	"github.com/gin-gonic/gin"
)

// GetMyNotifications is the handler for GET /api/notifications.
func (h *Handlers) GetMyNotifications(c *gin.Context) {
	ident := identity(c)

	notifications, err := store.ListNotifications(h.DB, ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead is the handler for PATCH /api/notifications/:id/read.
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := store.MarkNotificationRead(h.DB, id, ident.UserID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
