// server/internal/api/handlers/message_handler.go
package handlers

import (
	"net/http"
	"strings"

	"lane-supply-api-server/internal/models"
	"lane-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	Store *store.Store
}

type SendMessagePayload struct {
	To       string          `json:"to" binding:"required"`
	Subject  string          `json:"subject"`
	Content  string          `json:"content" binding:"required"`
	Priority models.Priority `json:"priority"`
}

// SendMessage appends to the message log. "to" may be a username or a
// broadcast group token such as models.BroadcastAllLanes.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var payload SendMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(payload.To) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient is required"})
		return
	}

	message := models.Message{
		From:     c.GetString("user_name"),
		To:       payload.To,
		Subject:  payload.Subject,
		Content:  payload.Content,
		Priority: payload.Priority,
	}
	created, err := h.Store.SendMessage(c.Request.Context(), &message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMessages returns the caller's inbox and sent messages, newest first.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	messages, err := h.Store.MessagesFor(c.Request.Context(), c.GetString("user_name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkMessageRead flips the read flag. Idempotent.
func (h *MessageHandler) MarkMessageRead(c *gin.Context) {
	if err := h.Store.MarkMessageRead(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark message read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetNotifications returns the caller's feed, newest first.
func (h *MessageHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.Store.NotificationsFor(c.Request.Context(), c.GetString("user_name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flips the read flag. Idempotent.
func (h *MessageHandler) MarkNotificationRead(c *gin.Context) {
	if err := h.Store.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetUnreadCount tallies unread messages addressed to the caller and unread
// notifications, from the recipient's perspective only.
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	counts, err := h.Store.UnreadCountsFor(c.Request.Context(), c.GetString("user_name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unread items"})
		return
	}
	c.JSON(http.StatusOK, counts)
}
