// server/internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// NotificationSink receives every stored notification for live delivery.
// The websocket hub implements it; tests inject their own.
type NotificationSink interface {
	Send(username string, payload []byte) error
}

// Retention holds the knobs for the cleanup and backup jobs.
type Retention struct {
	CleanupIntervalDays int
	RequestDays         int
	// ReportingDays is deliberately separate from RequestDays: it is only
	// used to count "old" requests in the reports summary, never to delete.
	ReportingDays    int
	NotificationDays int
	MessageDays      int
	BackupInterval   int
	MaxBackups       int
}

// DefaultRetention mirrors the documented sweep windows.
func DefaultRetention() Retention {
	return Retention{
		CleanupIntervalDays: 30,
		RequestDays:         30,
		ReportingDays:       730,
		NotificationDays:    7,
		MessageDays:         14,
		BackupInterval:      7,
		MaxBackups:          10,
	}
}

// Store is the repository over the blob backend. Every mutation that spans
// more than one key runs under the store mutex, so the dual-collection
// invariant for requests holds inside a single method instead of relying on
// caller discipline.
type Store struct {
	backend   Backend
	sink      NotificationSink
	retention Retention
	mu        sync.Mutex
}

func New(backend Backend, sink NotificationSink, retention Retention) *Store {
	if retention.MaxBackups <= 0 {
		retention = DefaultRetention()
	}
	return &Store{backend: backend, sink: sink, retention: retention}
}

// readJSON decodes the collection at key into out. An absent key or a
// malformed blob both leave out at its zero value: corrupt data is treated
// as an empty collection, but logged so it is visible server-side.
func (s *Store) readJSON(ctx context.Context, key string, out interface{}) error {
	data, err := s.backend.Read(ctx, key)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("WARNING: corrupt blob at %q treated as empty: %v", key, err)
	}
	return nil
}

func (s *Store) writeJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.backend.Write(ctx, key, data)
}

// readTimestamp loads one of the job marker keys. Returns the zero time when
// the marker is absent or unreadable.
func (s *Store) readTimestamp(ctx context.Context, key string) time.Time {
	var ts time.Time
	if err := s.readJSON(ctx, key, &ts); err != nil {
		return time.Time{}
	}
	return ts
}

func (s *Store) stampTimestamp(ctx context.Context, key string, t time.Time) error {
	return s.writeJSON(ctx, key, t)
}
