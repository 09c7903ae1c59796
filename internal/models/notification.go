// server/internal/models/notification.go
package models

import "time"

// NotificationType mirrors the severity levels the dashboards render.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
	NotifySuccess NotificationType = "success"
)

// Notification is a per-user feed entry created as a side effect of request
// transitions, message sends, backups, cleanups and report exports.
type Notification struct {
	ID        string           `json:"id"`
	User      string           `json:"user"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
}
