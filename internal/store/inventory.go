// server/internal/store/inventory.go
package store

import (
	"context"
	"strings"
	"time"

	"lane-supply-api-server/internal/models"

	"github.com/google/uuid"
)

// SaveInventoryItem upserts by name: when an item with the same name already
// exists its fields are merged and updated_at is stamped, otherwise a new
// item is inserted. At most one item per name ever exists.
func (s *Store) SaveInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.MinQuantity <= 0 {
		item.MinQuantity = models.DefaultMinQuantity
	}
	if item.Quantity < 0 {
		item.Quantity = 0
	}

	var items []models.InventoryItem
	if err := s.readJSON(ctx, KeyInventory, &items); err != nil {
		return err
	}

	now := time.Now()
	name := strings.TrimSpace(item.Name)
	for i := range items {
		if items[i].Name != name {
			continue
		}
		items[i].Quantity = item.Quantity
		items[i].MinQuantity = item.MinQuantity
		items[i].Location = item.Location
		items[i].Notes = item.Notes
		items[i].UpdatedAt = now
		*item = items[i]
		return s.writeJSON(ctx, KeyInventory, items)
	}

	item.ID = uuid.New().String()
	item.Name = name
	item.CreatedAt = now
	item.UpdatedAt = now
	items = append(items, *item)
	return s.writeJSON(ctx, KeyInventory, items)
}

func (s *Store) InventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadInventory(ctx)
}

// LowStockItems returns items at or below their reorder threshold.
func (s *Store) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return nil, err
	}
	low := []models.InventoryItem{}
	for _, it := range items {
		if it.LowStock() {
			low = append(low, it)
		}
	}
	return low, nil
}

// DeleteInventoryItem removes by id. Unknown ids are a no-op.
func (s *Store) DeleteInventoryItem(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return false, err
	}
	kept := items[:0]
	removed := false
	for _, it := range items {
		if it.ID == id {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return false, nil
	}
	return true, s.writeJSON(ctx, KeyInventory, kept)
}

func (s *Store) loadInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.readJSON(ctx, KeyInventory, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return items, nil
}
