// server/internal/models/expiring_item.go
package models

import "time"

// ExpiringItem is an item with a shelf life reported by a lane worker.
// Append-only: there is no update path, HR reads these for alerts.
type ExpiringItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ExpiryDate time.Time `json:"expiry_date"`
	Location   string    `json:"location"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	ReportedBy string    `json:"reported_by"`
}
