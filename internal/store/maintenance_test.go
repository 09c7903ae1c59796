package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lane-supply-api-server/internal/models"
)

func seedAged(t *testing.T, s *Store, key string, v interface{}) {
	t.Helper()
	if err := s.writeJSON(context.Background(), key, v); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func TestCleanupOldData(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	now := time.Now()

	old := now.AddDate(0, 0, -45)
	fresh := now.AddDate(0, 0, -5)

	seedAged(t, s, KeyAllRequests, []models.Request{
		{ID: "old-1", Type: models.TypeWarehouse, ItemName: "gloves", Quantity: 1,
			Status: models.StatusDelivered, UserName: "ممر1", CreatedAt: old, UpdatedAt: old},
		{ID: "new-1", Type: models.TypeWarehouse, ItemName: "tape", Quantity: 1,
			Status: models.StatusPending, UserName: "ممر1", CreatedAt: fresh, UpdatedAt: fresh},
	})
	seedAged(t, s, UserRequestsKey("ممر1"), []models.Request{
		{ID: "old-1", Type: models.TypeWarehouse, ItemName: "gloves", Quantity: 1,
			Status: models.StatusDelivered, UserName: "ممر1", CreatedAt: old, UpdatedAt: old},
		{ID: "new-1", Type: models.TypeWarehouse, ItemName: "tape", Quantity: 1,
			Status: models.StatusPending, UserName: "ممر1", CreatedAt: fresh, UpdatedAt: fresh},
	})
	seedAged(t, s, KeyNotifications, []models.Notification{
		{ID: "n-old", User: "ممر1", CreatedAt: now.AddDate(0, 0, -10)},
		{ID: "n-new", User: "ممر1", CreatedAt: fresh},
	})
	seedAged(t, s, KeyMessages, []models.Message{
		{ID: "m-old", From: "hr", To: "ممر1", CreatedAt: now.AddDate(0, 0, -20)},
		{ID: "m-new", From: "hr", To: "ممر1", CreatedAt: fresh},
	})

	result, err := s.CleanupOldData(ctx, "warehouse")
	if err != nil {
		t.Fatalf("CleanupOldData: %v", err)
	}
	if result.Requests != 1 || result.Notifications != 1 || result.Messages != 1 {
		t.Fatalf("result = %+v, want 1/1/1", result)
	}

	all, _ := s.Requests(ctx)
	if len(all) != 1 || all[0].ID != "new-1" {
		t.Fatalf("global requests after cleanup: %+v", all)
	}
	mine, _ := s.RequestsByUser(ctx, "ممر1")
	if len(mine) != 1 || mine[0].ID != "new-1" {
		t.Fatalf("per-user requests after cleanup: %+v", mine)
	}

	// The runner gets one summary notification.
	feed, _ := s.NotificationsFor(ctx, "warehouse")
	if len(feed) != 1 {
		t.Fatalf("expected summary notification, got %+v", feed)
	}

	// Immediate re-run deletes nothing and stays due-gated.
	result, err = s.CleanupOldData(ctx, "warehouse")
	if err != nil {
		t.Fatalf("second CleanupOldData: %v", err)
	}
	if result.Total() != 0 {
		t.Fatalf("second sweep deleted records: %+v", result)
	}
	if s.ShouldRunCleanup(ctx) {
		t.Fatal("cleanup should not be due right after running")
	}
}

func TestShouldRunCleanupWithoutMarker(t *testing.T) {
	s := newTestStore()
	if !s.ShouldRunCleanup(context.Background()) {
		t.Fatal("cleanup must be due when no marker exists")
	}
	if !s.ShouldCreateBackup(context.Background()) {
		t.Fatal("backup must be due when no marker exists")
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created := mustCreate(t, s, models.Request{
		Type: models.TypeWarehouse, ItemName: "gloves", Quantity: 3, UserName: "ممر1",
	})
	if err := s.SaveInventoryItem(ctx, &models.InventoryItem{Name: "gloves", Quantity: 40}); err != nil {
		t.Fatalf("SaveInventoryItem: %v", err)
	}

	backup, err := s.CreateBackup(ctx, "warehouse")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}
	if backup.Version != models.BackupVersion || backup.CreatedBy != "warehouse" {
		t.Fatalf("backup metadata: %+v", backup)
	}
	if len(backup.Data.Requests) != 1 || len(backup.Data.Inventory) != 1 {
		t.Fatalf("backup payload: %d requests, %d inventory items",
			len(backup.Data.Requests), len(backup.Data.Inventory))
	}

	// Mutate everything after the snapshot.
	if _, err := s.DeleteRequest(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRequest: %v", err)
	}
	mustCreate(t, s, models.Request{Type: models.TypeHR, ItemName: "contract", UserName: "ممر2"})
	if err := s.SaveInventoryItem(ctx, &models.InventoryItem{Name: "tape", Quantity: 9}); err != nil {
		t.Fatalf("SaveInventoryItem: %v", err)
	}

	found, err := s.RestoreBackup(ctx, backup.ID)
	if err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}
	if !found {
		t.Fatal("backup id not found")
	}

	all, _ := s.Requests(ctx)
	if len(all) != 1 || all[0].ID != created.ID {
		t.Fatalf("requests after restore: %+v", all)
	}
	items, _ := s.InventoryItems(ctx)
	if len(items) != 1 || items[0].Name != "gloves" || items[0].Quantity != 40 {
		t.Fatalf("inventory after restore: %+v", items)
	}
	// Per-user collections were dropped and rebuild from the global list.
	mine, _ := s.RequestsByUser(ctx, "ممر1")
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("per-user requests after restore: %+v", mine)
	}
	gone, _ := s.RequestsByUser(ctx, "ممر2")
	if len(gone) != 0 {
		t.Fatalf("post-snapshot request survived restore: %+v", gone)
	}
}

func TestRestoreUnknownBackup(t *testing.T) {
	s := newTestStore()
	found, err := s.RestoreBackup(context.Background(), "no-such-backup")
	if err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}
	if found {
		t.Fatal("unknown backup id reported as restored")
	}
}

func TestBackupListCapped(t *testing.T) {
	retention := DefaultRetention()
	retention.MaxBackups = 3
	s := New(NewMemoryBackend(), nil, retention)
	ctx := context.Background()

	var last *models.Backup
	for i := 0; i < 5; i++ {
		// Distinguish snapshots by the request count they carry.
		mustCreate(t, s, models.Request{
			ItemName: fmt.Sprintf("item-%d", i), UserName: "ممر1",
		})
		b, err := s.CreateBackup(ctx, "warehouse")
		if err != nil {
			t.Fatalf("CreateBackup %d: %v", i, err)
		}
		last = b
	}

	backups, err := s.Backups(ctx)
	if err != nil {
		t.Fatalf("Backups: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("backup list length = %d, want cap of 3", len(backups))
	}
	if backups[len(backups)-1].ID != last.ID {
		t.Fatal("newest snapshot missing from the capped list")
	}
	if len(backups[0].Data.Requests) != 3 {
		t.Fatalf("oldest surviving snapshot should be the third one, has %d requests",
			len(backups[0].Data.Requests))
	}
}
