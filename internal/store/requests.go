// server/internal/store/requests.go
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lane-supply-api-server/internal/models"

	"github.com/google/uuid"
)

// TransferNoteSuffix is appended to response_notes when a warehouse request
// is re-queued to HR: the item is currently unavailable at the warehouse.
const TransferNoteSuffix = "تم تحويل الطلب تلقائياً إلى الموارد البشرية - الصنف غير متوفر حالياً"

// NewRequestID generates an opaque id: creation time in unix millis plus a
// short random suffix.
func NewRequestID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// RequestPatch is a partial update. Nil fields are left untouched.
type RequestPatch struct {
	ItemName      *string               `json:"item_name"`
	Quantity      *models.FlexInt       `json:"quantity"`
	Urgent        *bool                 `json:"urgent"`
	Notes         *string               `json:"notes"`
	Status        *models.RequestStatus `json:"status"`
	ResponseNotes *string               `json:"response_notes"`
}

// CreateRequest appends the request to the global collection and to the
// requester's own collection. Both writes happen under the store lock so the
// two copies cannot diverge.
func (s *Store) CreateRequest(ctx context.Context, r *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if r.ID == "" {
		r.ID = NewRequestID()
	}
	if !r.Type.Valid() {
		r.Type = models.TypeWarehouse
	}
	if r.Quantity < 1 {
		r.Quantity = 1
	}
	r.Status = models.StatusPending
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = r.CreatedAt

	var all []models.Request
	if err := s.readJSON(ctx, KeyAllRequests, &all); err != nil {
		return err
	}
	all = append(all, *r)
	if err := s.writeJSON(ctx, KeyAllRequests, all); err != nil {
		return err
	}

	var mine []models.Request
	if err := s.readJSON(ctx, UserRequestsKey(r.UserName), &mine); err != nil {
		return err
	}
	mine = append(mine, *r)
	return s.writeJSON(ctx, UserRequestsKey(r.UserName), mine)
}

// Requests returns the global collection, newest first.
func (s *Store) Requests(ctx context.Context) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRequests(ctx)
}

// RequestByID finds a request in the global collection. Returns nil when the
// id is unknown.
func (s *Store) RequestByID(ctx context.Context, id string) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

// RequestsByUser returns the requester's own collection. When the per-user
// key is absent the global collection is filtered instead, and the result is
// written back as the per-user cache.
func (s *Store) RequestsByUser(ctx context.Context, username string) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := UserRequestsKey(username)
	data, err := s.backend.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	if data != nil {
		var mine []models.Request
		if err := s.readJSON(ctx, key, &mine); err != nil {
			return nil, err
		}
		return normalizeRequests(mine), nil
	}

	all, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}
	mine := []models.Request{}
	for _, r := range all {
		if r.UserName == username {
			mine = append(mine, r)
		}
	}
	// Backfill the per-user cache.
	if err := s.writeJSON(ctx, key, mine); err != nil {
		return nil, err
	}
	return mine, nil
}

// RequestsByType returns one department queue.
func (s *Store) RequestsByType(ctx context.Context, t models.RequestType) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Request{}
	for _, r := range all {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateRequest applies the patch to the request in both collections. An
// unknown id is a silent no-op and returns (nil, nil), not an error.
//
// A patch with status transfer_to_hr against a warehouse request re-queues
// it: type becomes hr, status resets to pending, and the fixed transfer note
// is appended to response_notes. The id, requester and history are kept.
func (s *Store) UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}

	var merged *models.Request
	for i := range all {
		if all[i].ID != id {
			continue
		}
		m := applyPatch(all[i], patch)
		all[i] = m
		merged = &m
		break
	}
	if merged == nil {
		return nil, nil
	}
	if err := s.writeJSON(ctx, KeyAllRequests, all); err != nil {
		return nil, err
	}

	// Apply the identical merged record to the requester's collection. The
	// original user_name never changes across a patch, so it keys the second
	// write.
	key := UserRequestsKey(merged.UserName)
	var mine []models.Request
	if err := s.readJSON(ctx, key, &mine); err != nil {
		return nil, err
	}
	for i := range mine {
		if mine[i].ID == id {
			mine[i] = *merged
			break
		}
	}
	if err := s.writeJSON(ctx, key, mine); err != nil {
		return nil, err
	}
	return merged, nil
}

// DeleteRequest removes the request from both collections. Unknown ids are a
// no-op; the bool reports whether anything was removed.
func (s *Store) DeleteRequest(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadRequests(ctx)
	if err != nil {
		return false, err
	}

	owner := ""
	kept := all[:0]
	for _, r := range all {
		if r.ID == id {
			owner = r.UserName
			continue
		}
		kept = append(kept, r)
	}
	if owner == "" {
		return false, nil
	}
	if err := s.writeJSON(ctx, KeyAllRequests, kept); err != nil {
		return false, err
	}

	key := UserRequestsKey(owner)
	var mine []models.Request
	if err := s.readJSON(ctx, key, &mine); err != nil {
		return false, err
	}
	keptMine := mine[:0]
	for _, r := range mine {
		if r.ID != id {
			keptMine = append(keptMine, r)
		}
	}
	if err := s.writeJSON(ctx, key, keptMine); err != nil {
		return false, err
	}
	return true, nil
}

// RequestFilter is a derived, non-persisted view over the global collection.
type RequestFilter struct {
	Status models.RequestStatus
	Type   models.RequestType
	Search string
}

// FilterRequests matches the search term case-insensitively against
// item_name, user_name and notes.
func (s *Store) FilterRequests(ctx context.Context, f RequestFilter) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(f.Search)
	out := []models.Request{}
	for _, r := range all {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.ItemName), term) &&
			!strings.Contains(strings.ToLower(r.UserName), term) &&
			!strings.Contains(strings.ToLower(r.Notes), term) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// loadRequests reads the global collection. Callers must hold the store lock.
func (s *Store) loadRequests(ctx context.Context) ([]models.Request, error) {
	var all []models.Request
	if err := s.readJSON(ctx, KeyAllRequests, &all); err != nil {
		return nil, err
	}
	return normalizeRequests(all), nil
}

func normalizeRequests(rs []models.Request) []models.Request {
	if rs == nil {
		return []models.Request{}
	}
	for i := range rs {
		// updated_at is implicit on old records: infer it from created_at.
		if rs[i].UpdatedAt.IsZero() {
			rs[i].UpdatedAt = rs[i].CreatedAt
		}
		if rs[i].Quantity < 1 {
			rs[i].Quantity = 1
		}
	}
	return rs
}

func applyPatch(r models.Request, patch RequestPatch) models.Request {
	if patch.ItemName != nil {
		r.ItemName = *patch.ItemName
	}
	if patch.Quantity != nil {
		r.Quantity = *patch.Quantity
		if r.Quantity < 1 {
			r.Quantity = 1
		}
	}
	if patch.Urgent != nil {
		r.Urgent = *patch.Urgent
	}
	if patch.Notes != nil {
		r.Notes = *patch.Notes
	}
	if patch.ResponseNotes != nil {
		r.ResponseNotes = *patch.ResponseNotes
	}
	if patch.Status != nil {
		switch {
		case *patch.Status == models.StatusTransferToHR:
			// Queue change, not just a status change. Only a warehouse
			// request can transfer; the transient value is never stored.
			if r.Type == models.TypeWarehouse {
				r.Type = models.TypeHR
				r.Status = models.StatusPending
				if r.ResponseNotes != "" {
					r.ResponseNotes += " - "
				}
				r.ResponseNotes += TransferNoteSuffix
			}
		case patch.Status.Valid():
			r.Status = *patch.Status
		}
	}
	r.UpdatedAt = time.Now()
	return r
}
