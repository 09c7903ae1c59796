// server/internal/api/handlers/expiring_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"lane-supply-api-server/internal/models"
	"lane-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type ExpiringHandler struct {
	Store *store.Store
}

type AddExpiringItemPayload struct {
	Name       string `json:"name" binding:"required"`
	ExpiryDate string `json:"expiry_date" binding:"required"` // YYYY-MM-DD
	Location   string `json:"location"`
	Notes      string `json:"notes"`
}

// AddItem records a worker-reported expiring item. Append-only.
func (h *ExpiringHandler) AddItem(c *gin.Context) {
	var payload AddExpiringItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expiry, err := time.Parse("2006-01-02", payload.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_date must be YYYY-MM-DD"})
		return
	}

	item := models.ExpiringItem{
		Name:       payload.Name,
		ExpiryDate: expiry,
		Location:   payload.Location,
		Notes:      payload.Notes,
		ReportedBy: c.GetString("user_name"),
	}
	if err := h.Store.AddExpiringItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add expiring item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItems returns every reported expiring item.
func (h *ExpiringHandler) GetItems(c *gin.Context) {
	items, err := h.Store.ExpiringItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query expiring items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetAlerts returns items expiring within the requested window (default 30
// days). HR reads this for its alerts view.
func (h *ExpiringHandler) GetAlerts(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}

	items, err := h.Store.ExpiringSoon(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query expiring items"})
		return
	}
	c.JSON(http.StatusOK, items)
}
