// server/internal/store/messaging.go
package store

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"lane-supply-api-server/internal/models"

	"github.com/google/uuid"
)

// SendMessage appends to the message log and creates a notification for the
// recipient summarizing the message. "to" may be a broadcast group token; it
// is stored literally and not expanded into per-recipient notifications.
func (s *Store) SendMessage(ctx context.Context, m *models.Message) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = uuid.New().String()
	m.CreatedAt = time.Now()
	m.Read = false
	if !m.Priority.Valid() {
		m.Priority = models.PriorityMedium
	}

	var messages []models.Message
	if err := s.readJSON(ctx, KeyMessages, &messages); err != nil {
		return nil, err
	}
	messages = append(messages, *m)
	if err := s.writeJSON(ctx, KeyMessages, messages); err != nil {
		return nil, err
	}

	kind := models.NotifyInfo
	if m.Priority == models.PriorityUrgent {
		kind = models.NotifyError
	}
	_, err := s.notify(ctx, &models.Notification{
		User:    m.To,
		Title:   "رسالة جديدة من " + m.From,
		Message: m.Subject,
		Type:    kind,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// MessagesFor returns the user's inbox and sent messages, newest first.
func (s *Store) MessagesFor(ctx context.Context, username string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []models.Message
	if err := s.readJSON(ctx, KeyMessages, &messages); err != nil {
		return nil, err
	}
	out := []models.Message{}
	for _, m := range messages {
		if m.To == username || m.From == username {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// NotificationsFor returns the user's feed, newest first.
func (s *Store) NotificationsFor(ctx context.Context, username string) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notifications []models.Notification
	if err := s.readJSON(ctx, KeyNotifications, &notifications); err != nil {
		return nil, err
	}
	out := []models.Notification{}
	for _, n := range notifications {
		if n.User == username {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MarkMessageRead flips the read flag in place. Idempotent; unknown ids are
// a no-op.
func (s *Store) MarkMessageRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []models.Message
	if err := s.readJSON(ctx, KeyMessages, &messages); err != nil {
		return err
	}
	for i := range messages {
		if messages[i].ID == id {
			messages[i].Read = true
			return s.writeJSON(ctx, KeyMessages, messages)
		}
	}
	return nil
}

// MarkNotificationRead flips the read flag in place. Idempotent.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notifications []models.Notification
	if err := s.readJSON(ctx, KeyNotifications, &notifications); err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].ID == id {
			notifications[i].Read = true
			return s.writeJSON(ctx, KeyNotifications, notifications)
		}
	}
	return nil
}

// UnreadCounts tallies from the recipient's perspective only: messages the
// user sent are never counted, even if the recipient has not read them.
type UnreadCounts struct {
	Messages      int `json:"messages"`
	Notifications int `json:"notifications"`
}

func (s *Store) UnreadCountsFor(ctx context.Context, username string) (UnreadCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts UnreadCounts

	var messages []models.Message
	if err := s.readJSON(ctx, KeyMessages, &messages); err != nil {
		return counts, err
	}
	for _, m := range messages {
		if m.To == username && !m.Read {
			counts.Messages++
		}
	}

	var notifications []models.Notification
	if err := s.readJSON(ctx, KeyNotifications, &notifications); err != nil {
		return counts, err
	}
	for _, n := range notifications {
		if n.User == username && !n.Read {
			counts.Notifications++
		}
	}
	return counts, nil
}

// Notify appends a notification and pushes it to the recipient's open
// websocket, if any.
func (s *Store) Notify(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notify(ctx, n)
}

// notify is the lock-held fan-out entry used by request transitions, message
// sends, backups, cleanups and report exports.
func (s *Store) notify(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()
	n.Read = false
	if n.Type == "" {
		n.Type = models.NotifyInfo
	}

	var notifications []models.Notification
	if err := s.readJSON(ctx, KeyNotifications, &notifications); err != nil {
		return nil, err
	}
	notifications = append(notifications, *n)
	if err := s.writeJSON(ctx, KeyNotifications, notifications); err != nil {
		return nil, err
	}

	if s.sink != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			// Live delivery is best effort; the stored record is canonical.
			if err := s.sink.Send(n.User, payload); err != nil {
				log.Printf("Failed to push notification to %s: %v", n.User, err)
			}
		}
	}
	return n, nil
}
