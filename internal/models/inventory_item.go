// server/internal/models/inventory_item.go
package models

import "time"

const DefaultMinQuantity = 5

// InventoryItem is a named stock item. Name is the natural key: saving an
// item whose name already exists merges into the existing record.
type InventoryItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	MinQuantity int       `json:"min_quantity"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinQuantity
}
