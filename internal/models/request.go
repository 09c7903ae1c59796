// server/internal/models/request.go
package models

import "time"

// RequestType is the department queue that owns a request.
type RequestType string

const (
	TypeWarehouse RequestType = "warehouse"
	TypeHR        RequestType = "hr"
)

func (t RequestType) Valid() bool {
	return t == TypeWarehouse || t == TypeHR
}

// RequestStatus is the lifecycle state of a request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusApproved   RequestStatus = "approved"
	StatusRejected   RequestStatus = "rejected"
	StatusInProgress RequestStatus = "in_progress"
	StatusDelivered  RequestStatus = "delivered"

	// StatusTransferToHR is a transient input value only: a reviewer applies
	// it to a warehouse request to move it into the HR queue. It is never
	// stored on a request.
	StatusTransferToHR RequestStatus = "transfer_to_hr"
)

// Valid reports whether s is a storable status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusInProgress, StatusDelivered:
		return true
	}
	return false
}

// Label is the Arabic display name used in notifications and reports.
func (t RequestType) Label() string {
	switch t {
	case TypeWarehouse:
		return "المستودع"
	case TypeHR:
		return "الموارد البشرية"
	}
	return string(t)
}

func (s RequestStatus) Label() string {
	switch s {
	case StatusPending:
		return "قيد الانتظار"
	case StatusApproved:
		return "تمت الموافقة"
	case StatusRejected:
		return "مرفوض"
	case StatusInProgress:
		return "قيد التنفيذ"
	case StatusDelivered:
		return "تم التسليم"
	}
	return string(s)
}

// Request is a supply/HR request submitted by a lane worker.
// A request lives in two collections at once: the global one and the
// requester's own; the store keeps the two copies field-identical.
type Request struct {
	ID            string        `json:"id"`
	Type          RequestType   `json:"type"`
	ItemName      string        `json:"item_name"`
	Quantity      FlexInt       `json:"quantity"`
	Urgent        bool          `json:"urgent"`
	Notes         string        `json:"notes"`
	Status        RequestStatus `json:"status"`
	ResponseNotes string        `json:"response_notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	UserName      string        `json:"user_name"`
}
