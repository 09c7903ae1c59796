// server/internal/api/handlers/inventory_handler.go
package handlers

import (
	"net/http"
	"strings"

	"lane-supply-api-server/internal/models"
	"lane-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	Store *store.Store
}

type SaveInventoryItemPayload struct {
	Name        string `json:"name" binding:"required"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

// SaveItem upserts by name: repeated saves of the same name merge into one
// record. Warehouse role only.
func (h *InventoryHandler) SaveItem(c *gin.Context) {
	var payload SaveInventoryItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}

	item := models.InventoryItem{
		Name:        payload.Name,
		Quantity:    payload.Quantity,
		MinQuantity: payload.MinQuantity,
		Location:    payload.Location,
		Notes:       payload.Notes,
	}
	if err := h.Store.SaveInventoryItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save inventory item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetItems returns the whole inventory.
func (h *InventoryHandler) GetItems(c *gin.Context) {
	items, err := h.Store.InventoryItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetLowStock returns items at or below their minimum quantity.
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	items, err := h.Store.LowStockItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteItem removes an item by id. Warehouse role only.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.Store.DeleteInventoryItem(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
