// server/internal/store/expiring.go
package store

import (
	"context"
	"time"

	"lane-supply-api-server/internal/models"

	"github.com/google/uuid"
)

// AddExpiringItem appends a worker-reported expiring item. The collection is
// append-only: there is no update path.
func (s *Store) AddExpiringItem(ctx context.Context, item *models.ExpiringItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.New().String()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	var items []models.ExpiringItem
	if err := s.readJSON(ctx, KeyExpiring, &items); err != nil {
		return err
	}
	items = append(items, *item)
	return s.writeJSON(ctx, KeyExpiring, items)
}

func (s *Store) ExpiringItems(ctx context.Context) ([]models.ExpiringItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadExpiring(ctx)
}

// ExpiringSoon returns items whose expiry date falls within the next `days`
// days, already-expired items included. HR reads this for alerts.
func (s *Store) ExpiringSoon(ctx context.Context, days int) ([]models.ExpiringItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadExpiring(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, days)
	soon := []models.ExpiringItem{}
	for _, it := range items {
		if it.ExpiryDate.Before(cutoff) {
			soon = append(soon, it)
		}
	}
	return soon, nil
}

func (s *Store) loadExpiring(ctx context.Context) ([]models.ExpiringItem, error) {
	var items []models.ExpiringItem
	if err := s.readJSON(ctx, KeyExpiring, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ExpiringItem{}
	}
	return items, nil
}
