// server/internal/store/backend.go
package store

import "context"

// Persisted keys. Each key holds one JSON-encoded value; collections are
// written back whole on every mutation (read-modify-write, last write wins).
const (
	KeyAllRequests   = "all_requests"
	KeyInventory     = "inventory_items"
	KeyExpiring      = "expiring_items"
	KeyUsers         = "users"
	KeyMessages      = "messages"
	KeyNotifications = "notifications"
	KeyBackups       = "backups"
	KeyLastCleanup   = "last_cleanup"
	KeyLastBackup    = "last_backup"

	// UserRequestsPrefix + username holds that requester's own copy of their
	// requests.
	UserRequestsPrefix = "requests_"
)

// UserRequestsKey returns the per-requester collection key.
func UserRequestsKey(username string) string {
	return UserRequestsPrefix + username
}

// Backend is the injected storage layer: a flat key to JSON-blob namespace.
// Read returns (nil, nil) for an absent key.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key under the given prefix. Used when a
	// restore invalidates all per-user request collections at once.
	DeletePrefix(ctx context.Context, prefix string) error
}
