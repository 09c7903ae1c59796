package store

import (
	"context"
	"testing"
	"time"

	"lane-supply-api-server/internal/models"
)

func TestSaveInventoryItemUpsertsByName(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first := models.InventoryItem{Name: "قفازات", Quantity: 100, Location: "رف 3"}
	if err := s.SaveInventoryItem(ctx, &first); err != nil {
		t.Fatalf("SaveInventoryItem: %v", err)
	}
	if first.ID == "" || first.MinQuantity != models.DefaultMinQuantity {
		t.Fatalf("insert did not initialize the item: %+v", first)
	}

	// Same name, new counts: must merge into the existing record.
	second := models.InventoryItem{Name: "  قفازات ", Quantity: 60, MinQuantity: 20, Notes: "refill"}
	if err := s.SaveInventoryItem(ctx, &second); err != nil {
		t.Fatalf("SaveInventoryItem upsert: %v", err)
	}

	items, err := s.InventoryItems(ctx)
	if err != nil {
		t.Fatalf("InventoryItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item after upsert, got %d", len(items))
	}
	got := items[0]
	if got.ID != first.ID {
		t.Fatalf("upsert replaced id %s with %s", first.ID, got.ID)
	}
	if got.Quantity != 60 || got.MinQuantity != 20 || got.Notes != "refill" {
		t.Fatalf("merge not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("created_at must survive an upsert")
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("updated_at not stamped: %+v", got)
	}
}

func TestLowStockItems(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	for _, it := range []models.InventoryItem{
		{Name: "gloves", Quantity: 3, MinQuantity: 5},
		{Name: "tape", Quantity: 5, MinQuantity: 5},
		{Name: "boxes", Quantity: 50, MinQuantity: 10},
	} {
		item := it
		if err := s.SaveInventoryItem(ctx, &item); err != nil {
			t.Fatalf("SaveInventoryItem %s: %v", it.Name, err)
		}
	}

	low, err := s.LowStockItems(ctx)
	if err != nil {
		t.Fatalf("LowStockItems: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("low stock count = %d, want 2 (at or below threshold)", len(low))
	}
	for _, it := range low {
		if it.Name == "boxes" {
			t.Fatalf("boxes is not low stock: %+v", it)
		}
	}
}

func TestDeleteInventoryItem(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	item := models.InventoryItem{Name: "gloves", Quantity: 10}
	if err := s.SaveInventoryItem(ctx, &item); err != nil {
		t.Fatalf("SaveInventoryItem: %v", err)
	}

	removed, err := s.DeleteInventoryItem(ctx, item.ID)
	if err != nil || !removed {
		t.Fatalf("DeleteInventoryItem = %v, %v", removed, err)
	}
	removed, err = s.DeleteInventoryItem(ctx, item.ID)
	if err != nil || removed {
		t.Fatalf("second delete should be a no-op, got %v, %v", removed, err)
	}
	items, _ := s.InventoryItems(ctx)
	if len(items) != 0 {
		t.Fatalf("items left after delete: %+v", items)
	}
}

func TestExpiringSoon(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	now := time.Now()

	entries := []models.ExpiringItem{
		{Name: "milk", ExpiryDate: now.AddDate(0, 0, -2), ReportedBy: "ممر1"},
		{Name: "yogurt", ExpiryDate: now.AddDate(0, 0, 10), ReportedBy: "ممر2"},
		{Name: "canned", ExpiryDate: now.AddDate(0, 0, 90), ReportedBy: "ممر2"},
	}
	for _, e := range entries {
		entry := e
		if err := s.AddExpiringItem(ctx, &entry); err != nil {
			t.Fatalf("AddExpiringItem %s: %v", e.Name, err)
		}
	}

	all, err := s.ExpiringItems(ctx)
	if err != nil {
		t.Fatalf("ExpiringItems: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	soon, err := s.ExpiringSoon(ctx, 30)
	if err != nil {
		t.Fatalf("ExpiringSoon: %v", err)
	}
	// Already-expired entries stay in the alert window.
	if len(soon) != 2 {
		t.Fatalf("30-day window = %d entries, want 2 (expired + near)", len(soon))
	}
	for _, e := range soon {
		if e.Name == "canned" {
			t.Fatalf("far-future entry in the window: %+v", e)
		}
	}
}
