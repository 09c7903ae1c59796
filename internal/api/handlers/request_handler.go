// server/internal/api/handlers/request_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"lane-supply-api-server/internal/models"
	"lane-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	Store *store.Store
}

type CreateRequestPayload struct {
	Type     models.RequestType `json:"type"`
	ItemName string             `json:"item_name" binding:"required"`
	Quantity models.FlexInt     `json:"quantity"`
	Urgent   bool               `json:"urgent"`
	Notes    string             `json:"notes"`
}

// CreateRequest submits a new request into the chosen department queue.
// Worker role only; the requester comes from the token, never the payload.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	username := c.GetString("user_name")

	var payload CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Type == "" {
		payload.Type = models.TypeWarehouse
	}
	if !payload.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown request type"})
		return
	}

	newRequest := models.Request{
		Type:     payload.Type,
		ItemName: payload.ItemName,
		Quantity: payload.Quantity,
		Urgent:   payload.Urgent,
		Notes:    payload.Notes,
		UserName: username,
	}
	if err := h.Store.CreateRequest(c.Request.Context(), &newRequest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	kind := models.NotifyInfo
	if newRequest.Urgent {
		kind = models.NotifyWarning
	}
	h.Store.Notify(c.Request.Context(), &models.Notification{
		User:    username,
		Title:   "تم إرسال الطلب",
		Message: fmt.Sprintf("تم إرسال طلب %q إلى %s", newRequest.ItemName, newRequest.Type.Label()),
		Type:    kind,
	})

	c.JSON(http.StatusCreated, newRequest)
}

// GetMyRequests returns the caller's own requests.
func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	username := c.GetString("user_name")

	requests, err := h.Store.RequestsByUser(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetAllRequests returns the global collection with optional status/type/
// search filters. Reviewer roles only.
func (h *RequestHandler) GetAllRequests(c *gin.Context) {
	filter := store.RequestFilter{
		Status: models.RequestStatus(c.Query("status")),
		Type:   models.RequestType(c.Query("type")),
		Search: c.Query("q"),
	}

	requests, err := h.Store.FilterRequests(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

type EditRequestPayload struct {
	ItemName *string         `json:"item_name"`
	Quantity *models.FlexInt `json:"quantity"`
	Urgent   *bool           `json:"urgent"`
	Notes    *string         `json:"notes"`
}

// UpdateMyRequest lets a worker edit their own request while it is still
// pending. Status and response notes are reviewer-only fields.
func (h *RequestHandler) UpdateMyRequest(c *gin.Context) {
	username := c.GetString("user_name")
	id := c.Param("id")

	var payload EditRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.Store.RequestByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up request"})
		return
	}
	if current != nil {
		if current.UserName != username {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own requests"})
			return
		}
		if current.Status != models.StatusPending {
			c.JSON(http.StatusConflict, gin.H{"error": "Only pending requests can be edited"})
			return
		}
	}

	updated, err := h.Store.UpdateRequest(c.Request.Context(), id, store.RequestPatch{
		ItemName: payload.ItemName,
		Quantity: payload.Quantity,
		Urgent:   payload.Urgent,
		Notes:    payload.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
		return
	}

	// A vanished id is a no-op, not an error.
	c.JSON(http.StatusOK, gin.H{"status": "success", "request": updated})
}

// DeleteMyRequest removes the caller's own pending request from both
// collections.
func (h *RequestHandler) DeleteMyRequest(c *gin.Context) {
	username := c.GetString("user_name")
	id := c.Param("id")

	current, err := h.Store.RequestByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up request"})
		return
	}
	if current != nil {
		if current.UserName != username {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own requests"})
			return
		}
		if current.Status != models.StatusPending {
			c.JSON(http.StatusConflict, gin.H{"error": "Only pending requests can be deleted"})
			return
		}
	}

	if _, err := h.Store.DeleteRequest(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type ReviewRequestPayload struct {
	Status        models.RequestStatus `json:"status" binding:"required"`
	ResponseNotes string               `json:"response_notes"`
}

// ReviewRequest applies a reviewer decision: a status change, or the special
// transfer_to_hr pseudo-transition that re-queues a warehouse request to HR.
// Each reviewer only touches their own queue, and every transition notifies
// the original requester.
func (h *RequestHandler) ReviewRequest(c *gin.Context) {
	role := models.Role(c.GetString("user_role"))
	id := c.Param("id")

	var payload ReviewRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !payload.Status.Valid() && payload.Status != models.StatusTransferToHR {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	current, err := h.Store.RequestByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up request"})
		return
	}
	if current != nil {
		reviewable := (role == models.RoleWarehouse && current.Type == models.TypeWarehouse) ||
			(role == models.RoleHR && current.Type == models.TypeHR)
		if !reviewable {
			c.JSON(http.StatusForbidden, gin.H{"error": "This request belongs to another department"})
			return
		}
		if payload.Status == models.StatusTransferToHR &&
			(role != models.RoleWarehouse || current.Type != models.TypeWarehouse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only warehouse requests can be transferred to HR"})
			return
		}
	}

	patch := store.RequestPatch{
		Status:        &payload.Status,
		ResponseNotes: &payload.ResponseNotes,
	}
	updated, err := h.Store.UpdateRequest(c.Request.Context(), id, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
		return
	}
	if updated == nil {
		// Vanished between lookup and update (e.g. a cleanup sweep): the
		// update is a silent no-op.
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}

	h.Store.Notify(c.Request.Context(), &models.Notification{
		User:    updated.UserName,
		Title:   "تحديث على طلبك",
		Message: fmt.Sprintf("طلب %q لدى %s: %s", updated.ItemName, updated.Type.Label(), updated.Status.Label()),
		Type:    reviewNotificationType(payload.Status),
	})

	c.JSON(http.StatusOK, gin.H{"status": "success", "request": updated})
}

func reviewNotificationType(status models.RequestStatus) models.NotificationType {
	switch status {
	case models.StatusApproved, models.StatusDelivered:
		return models.NotifySuccess
	case models.StatusRejected:
		return models.NotifyError
	case models.StatusTransferToHR:
		return models.NotifyWarning
	}
	return models.NotifyInfo
}
