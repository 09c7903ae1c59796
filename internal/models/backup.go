// server/internal/models/backup.go
package models

import "time"

const BackupVersion = "1.0"

// BackupData is a full copy of every persisted collection.
type BackupData struct {
	Requests      []Request       `json:"requests"`
	Inventory     []InventoryItem `json:"inventory"`
	ExpiringItems []ExpiringItem  `json:"expiring_items"`
	Users         []PublicUser    `json:"users"`
	Messages      []Message       `json:"messages"`
	Notifications []Notification  `json:"notifications"`
}

// Backup is one versioned snapshot in the rolling backup list.
type Backup struct {
	ID        string     `json:"id"`
	Version   string     `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by"`
	Data      BackupData `json:"data"`
}
