// server/internal/models/message.go
package models

import "time"

// Priority of an internal message.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// BroadcastAllLanes is the group token for messages addressed to every lane.
// The store keeps it literal: no per-recipient fan-out happens today, so a
// future fan-out has exactly one constant to hook into.
const BroadcastAllLanes = "جميع الممرات"

// Message is an internal message between dashboard users. "To" is either a
// username or a broadcast group token.
type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}
