// server/internal/store/maintenance.go
package store

import (
	"context"
	"fmt"
	"time"

	"lane-supply-api-server/internal/models"

	"github.com/google/uuid"
)

// ShouldRunCleanup reports whether the sweep is due: no last-cleanup marker,
// or at least the cleanup interval has elapsed.
func (s *Store) ShouldRunCleanup(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.readTimestamp(ctx, KeyLastCleanup)
	if last.IsZero() {
		return true
	}
	return time.Since(last) >= time.Duration(s.retention.CleanupIntervalDays)*24*time.Hour
}

// CleanupResult summarizes one sweep.
type CleanupResult struct {
	Requests      int `json:"requests"`
	Notifications int `json:"notifications"`
	Messages      int `json:"messages"`
}

func (r CleanupResult) Total() int {
	return r.Requests + r.Notifications + r.Messages
}

// CleanupOldData deletes aged records: requests older than the request
// retention window, notifications and messages older than theirs. Trimmed
// per-user request collections are rewritten alongside the global one. One
// summary notification is emitted for the invoking user when anything was
// deleted, and the last-cleanup marker is stamped. Re-running immediately is
// a no-op.
func (s *Store) CleanupOldData(ctx context.Context, runBy string) (CleanupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result CleanupResult
	now := time.Now()

	requestCutoff := now.AddDate(0, 0, -s.retention.RequestDays)
	all, err := s.loadRequests(ctx)
	if err != nil {
		return result, err
	}
	kept := []models.Request{}
	owners := map[string]bool{}
	for _, r := range all {
		if r.CreatedAt.Before(requestCutoff) {
			result.Requests++
			owners[r.UserName] = true
			continue
		}
		kept = append(kept, r)
	}
	if result.Requests > 0 {
		if err := s.writeJSON(ctx, KeyAllRequests, kept); err != nil {
			return result, err
		}
		for owner := range owners {
			key := UserRequestsKey(owner)
			var mine []models.Request
			if err := s.readJSON(ctx, key, &mine); err != nil {
				return result, err
			}
			keptMine := mine[:0]
			for _, r := range mine {
				if !r.CreatedAt.Before(requestCutoff) {
					keptMine = append(keptMine, r)
				}
			}
			if err := s.writeJSON(ctx, key, keptMine); err != nil {
				return result, err
			}
		}
	}

	notifyCutoff := now.AddDate(0, 0, -s.retention.NotificationDays)
	var notifications []models.Notification
	if err := s.readJSON(ctx, KeyNotifications, &notifications); err != nil {
		return result, err
	}
	keptNotifications := []models.Notification{}
	for _, n := range notifications {
		if n.CreatedAt.Before(notifyCutoff) {
			result.Notifications++
			continue
		}
		keptNotifications = append(keptNotifications, n)
	}
	if result.Notifications > 0 {
		if err := s.writeJSON(ctx, KeyNotifications, keptNotifications); err != nil {
			return result, err
		}
	}

	messageCutoff := now.AddDate(0, 0, -s.retention.MessageDays)
	var messages []models.Message
	if err := s.readJSON(ctx, KeyMessages, &messages); err != nil {
		return result, err
	}
	keptMessages := []models.Message{}
	for _, m := range messages {
		if m.CreatedAt.Before(messageCutoff) {
			result.Messages++
			continue
		}
		keptMessages = append(keptMessages, m)
	}
	if result.Messages > 0 {
		if err := s.writeJSON(ctx, KeyMessages, keptMessages); err != nil {
			return result, err
		}
	}

	if result.Total() > 0 {
		_, err = s.notify(ctx, &models.Notification{
			User:  runBy,
			Title: "تنظيف البيانات القديمة",
			Message: fmt.Sprintf("تم حذف %d طلب و %d إشعار و %d رسالة",
				result.Requests, result.Notifications, result.Messages),
			Type: models.NotifySuccess,
		})
		if err != nil {
			return result, err
		}
	}

	if err := s.stampTimestamp(ctx, KeyLastCleanup, now); err != nil {
		return result, err
	}
	return result, nil
}

// ShouldCreateBackup reports whether a snapshot is due.
func (s *Store) ShouldCreateBackup(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.readTimestamp(ctx, KeyLastBackup)
	if last.IsZero() {
		return true
	}
	return time.Since(last) >= time.Duration(s.retention.BackupInterval)*24*time.Hour
}

// CreateBackup snapshots every collection into one versioned object and
// appends it to the rolling backup list, keeping only the most recent
// snapshots.
func (s *Store) CreateBackup(ctx context.Context, createdBy string) (*models.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := models.BackupData{
		Requests:      []models.Request{},
		Inventory:     []models.InventoryItem{},
		ExpiringItems: []models.ExpiringItem{},
		Users:         []models.PublicUser{},
		Messages:      []models.Message{},
		Notifications: []models.Notification{},
	}
	if err := s.readJSON(ctx, KeyAllRequests, &data.Requests); err != nil {
		return nil, err
	}
	if err := s.readJSON(ctx, KeyInventory, &data.Inventory); err != nil {
		return nil, err
	}
	if err := s.readJSON(ctx, KeyExpiring, &data.ExpiringItems); err != nil {
		return nil, err
	}
	if err := s.readJSON(ctx, KeyUsers, &data.Users); err != nil {
		return nil, err
	}
	if err := s.readJSON(ctx, KeyMessages, &data.Messages); err != nil {
		return nil, err
	}
	if err := s.readJSON(ctx, KeyNotifications, &data.Notifications); err != nil {
		return nil, err
	}

	backup := models.Backup{
		ID:        uuid.New().String(),
		Version:   models.BackupVersion,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
		Data:      data,
	}

	var backups []models.Backup
	if err := s.readJSON(ctx, KeyBackups, &backups); err != nil {
		return nil, err
	}
	backups = append(backups, backup)
	if len(backups) > s.retention.MaxBackups {
		backups = backups[len(backups)-s.retention.MaxBackups:]
	}
	if err := s.writeJSON(ctx, KeyBackups, backups); err != nil {
		return nil, err
	}
	if err := s.stampTimestamp(ctx, KeyLastBackup, backup.CreatedAt); err != nil {
		return nil, err
	}

	_, err := s.notify(ctx, &models.Notification{
		User:    createdBy,
		Title:   "نسخة احتياطية",
		Message: "تم إنشاء نسخة احتياطية من جميع البيانات",
		Type:    models.NotifySuccess,
	})
	if err != nil {
		return nil, err
	}
	return &backup, nil
}

// Backups returns the rolling snapshot list, newest last.
func (s *Store) Backups(ctx context.Context) ([]models.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var backups []models.Backup
	if err := s.readJSON(ctx, KeyBackups, &backups); err != nil {
		return nil, err
	}
	if backups == nil {
		backups = []models.Backup{}
	}
	return backups, nil
}

// RestoreBackup overwrites the live collections wholesale from the snapshot
// with the given id. No merge, no partial restore. Per-user request
// collections are dropped; the next per-user read rebuilds them from the
// restored global collection.
func (s *Store) RestoreBackup(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var backups []models.Backup
	if err := s.readJSON(ctx, KeyBackups, &backups); err != nil {
		return false, err
	}
	for _, b := range backups {
		if b.ID != id {
			continue
		}
		if err := s.writeJSON(ctx, KeyAllRequests, b.Data.Requests); err != nil {
			return false, err
		}
		if err := s.writeJSON(ctx, KeyInventory, b.Data.Inventory); err != nil {
			return false, err
		}
		if err := s.writeJSON(ctx, KeyExpiring, b.Data.ExpiringItems); err != nil {
			return false, err
		}
		if err := s.writeJSON(ctx, KeyUsers, b.Data.Users); err != nil {
			return false, err
		}
		if err := s.writeJSON(ctx, KeyMessages, b.Data.Messages); err != nil {
			return false, err
		}
		if err := s.writeJSON(ctx, KeyNotifications, b.Data.Notifications); err != nil {
			return false, err
		}
		if err := s.backend.DeletePrefix(ctx, UserRequestsPrefix); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// SaveUsers persists the public user list; the seeder writes it once so
// backups can include the account table.
func (s *Store) SaveUsers(ctx context.Context, users []models.PublicUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(ctx, KeyUsers, users)
}

// Users returns the persisted public user list.
func (s *Store) Users(ctx context.Context) ([]models.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.PublicUser
	if err := s.readJSON(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.PublicUser{}
	}
	return users, nil
}
