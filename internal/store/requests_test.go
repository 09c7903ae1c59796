package store

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"lane-supply-api-server/internal/models"
)

func newTestStore() *Store {
	return New(NewMemoryBackend(), nil, DefaultRetention())
}

func mustCreate(t *testing.T, s *Store, r models.Request) models.Request {
	t.Helper()
	if err := s.CreateRequest(context.Background(), &r); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	return r
}

func TestCreateRequestVisibleInBothCollections(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created := mustCreate(t, s, models.Request{
		Type:     models.TypeWarehouse,
		ItemName: "gloves",
		Quantity: 5,
		UserName: "ممر1",
	})

	all, err := s.Requests(ctx)
	if err != nil {
		t.Fatalf("Requests: %v", err)
	}
	mine, err := s.RequestsByUser(ctx, "ممر1")
	if err != nil {
		t.Fatalf("RequestsByUser: %v", err)
	}

	if len(all) != 1 || len(mine) != 1 {
		t.Fatalf("expected exactly one record in each collection, got %d and %d", len(all), len(mine))
	}
	if all[0].ID != created.ID || mine[0].ID != created.ID {
		t.Fatalf("id mismatch: global=%s user=%s created=%s", all[0].ID, mine[0].ID, created.ID)
	}
	if all[0].Status != models.StatusPending {
		t.Fatalf("new request status = %s, want pending", all[0].Status)
	}
	if !sameRequest(all[0], mine[0]) {
		t.Fatalf("collections diverged: %+v vs %+v", all[0], mine[0])
	}
}

// sameRequest compares through the JSON encoding so time zone representation
// differences do not matter.
func sameRequest(a, b models.Request) bool {
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	return string(aj) == string(bj)
}

func TestCreateRequestDefaults(t *testing.T) {
	s := newTestStore()

	created := mustCreate(t, s, models.Request{ItemName: "tape", Quantity: 0, UserName: "ممر2"})

	if created.Quantity != 1 {
		t.Fatalf("quantity defaulted to %d, want 1", created.Quantity)
	}
	if created.Type != models.TypeWarehouse {
		t.Fatalf("type defaulted to %s, want warehouse", created.Type)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("id/created_at not populated: %+v", created)
	}
	if created.UpdatedAt != created.CreatedAt {
		t.Fatalf("updated_at should start equal to created_at")
	}
}

func TestUpdateRequestAppliesToBothCollections(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created := mustCreate(t, s, models.Request{
		Type: models.TypeWarehouse, ItemName: "gloves", Quantity: 5, UserName: "ممر1",
	})

	status := models.StatusApproved
	notes := "سيتم التسليم غداً"
	updated, err := s.UpdateRequest(ctx, created.ID, RequestPatch{Status: &status, ResponseNotes: &notes})
	if err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}
	if updated == nil {
		t.Fatal("UpdateRequest returned nil for an existing id")
	}

	all, _ := s.Requests(ctx)
	mine, _ := s.RequestsByUser(ctx, "ممر1")
	for _, got := range [][]models.Request{all, mine} {
		if len(got) != 1 {
			t.Fatalf("expected one record, got %d", len(got))
		}
		if got[0].Status != models.StatusApproved || got[0].ResponseNotes != notes {
			t.Fatalf("patch not applied: %+v", got[0])
		}
		if got[0].ItemName != "gloves" || got[0].Quantity != 5 || got[0].UserName != "ممر1" {
			t.Fatalf("unrelated fields changed: %+v", got[0])
		}
	}
	if !sameRequest(all[0], mine[0]) {
		t.Fatalf("collections diverged after update")
	}
}

func TestTransferToHRChangesQueue(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created := mustCreate(t, s, models.Request{
		Type: models.TypeWarehouse, ItemName: "gloves", Quantity: 5, UserName: "ممر1",
	})

	status := models.StatusTransferToHR
	notes := "out of stock"
	updated, err := s.UpdateRequest(ctx, created.ID, RequestPatch{Status: &status, ResponseNotes: &notes})
	if err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}

	if updated.Type != models.TypeHR {
		t.Fatalf("type = %s, want hr", updated.Type)
	}
	if updated.Status != models.StatusPending {
		t.Fatalf("status = %s, want pending (re-queued)", updated.Status)
	}
	if !strings.Contains(updated.ResponseNotes, "out of stock") ||
		!strings.Contains(updated.ResponseNotes, TransferNoteSuffix) {
		t.Fatalf("response_notes missing reviewer note or transfer suffix: %q", updated.ResponseNotes)
	}
	if updated.ID != created.ID || updated.UserName != "ممر1" {
		t.Fatalf("transfer must keep id and requester: %+v", updated)
	}

	hrQueue, _ := s.RequestsByType(ctx, models.TypeHR)
	warehouseQueue, _ := s.RequestsByType(ctx, models.TypeWarehouse)
	if len(hrQueue) != 1 || hrQueue[0].ID != created.ID {
		t.Fatalf("HR queue did not gain the request: %+v", hrQueue)
	}
	if len(warehouseQueue) != 0 {
		t.Fatalf("warehouse queue still holds the request: %+v", warehouseQueue)
	}
}

func TestTransferIgnoredForHRRequests(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created := mustCreate(t, s, models.Request{
		Type: models.TypeHR, ItemName: "contract", UserName: "ممر3",
	})

	status := models.StatusTransferToHR
	updated, err := s.UpdateRequest(ctx, created.ID, RequestPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}
	if updated.Type != models.TypeHR || updated.Status != models.StatusPending {
		t.Fatalf("transfer should not touch an HR request: %+v", updated)
	}
	if strings.Contains(updated.ResponseNotes, TransferNoteSuffix) {
		t.Fatalf("transfer suffix must not be appended: %q", updated.ResponseNotes)
	}
}

func TestUpdateUnknownIDIsSilentNoop(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	status := models.StatusApproved
	updated, err := s.UpdateRequest(ctx, "no-such-id", RequestPatch{Status: &status})
	if err != nil {
		t.Fatalf("unknown id must not be an error, got %v", err)
	}
	if updated != nil {
		t.Fatalf("unknown id returned a record: %+v", updated)
	}
}

func TestDeleteRequestRemovesFromBothCollections(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created := mustCreate(t, s, models.Request{
		Type: models.TypeWarehouse, ItemName: "gloves", UserName: "ممر1",
	})
	keep := mustCreate(t, s, models.Request{
		Type: models.TypeWarehouse, ItemName: "tape", UserName: "ممر1",
	})

	removed, err := s.DeleteRequest(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteRequest: %v", err)
	}
	if !removed {
		t.Fatal("expected a removal")
	}

	all, _ := s.Requests(ctx)
	mine, _ := s.RequestsByUser(ctx, "ممر1")
	if len(all) != 1 || all[0].ID != keep.ID {
		t.Fatalf("global collection wrong after delete: %+v", all)
	}
	if len(mine) != 1 || mine[0].ID != keep.ID {
		t.Fatalf("per-user collection wrong after delete: %+v", mine)
	}

	// Repeat delete and update on the same id: no-ops, not errors.
	removed, err = s.DeleteRequest(ctx, created.ID)
	if err != nil || removed {
		t.Fatalf("second delete should be a no-op, got removed=%v err=%v", removed, err)
	}
	status := models.StatusApproved
	updated, err := s.UpdateRequest(ctx, created.ID, RequestPatch{Status: &status})
	if err != nil || updated != nil {
		t.Fatalf("update after delete should be a no-op, got %+v err=%v", updated, err)
	}
}

func TestRequestsByUserFallbackBackfillsCache(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created := mustCreate(t, s, models.Request{
		Type: models.TypeWarehouse, ItemName: "gloves", UserName: "ممر1",
	})
	mustCreate(t, s, models.Request{
		Type: models.TypeWarehouse, ItemName: "tape", UserName: "ممر2",
	})

	// Simulate a missing per-user collection.
	if err := s.backend.Delete(ctx, UserRequestsKey("ممر1")); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mine, err := s.RequestsByUser(ctx, "ممر1")
	if err != nil {
		t.Fatalf("RequestsByUser: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("fallback filter wrong: %+v", mine)
	}

	// The fallback must have written the cache back.
	data, _ := s.backend.Read(ctx, UserRequestsKey("ممر1"))
	if data == nil {
		t.Fatal("per-user cache was not backfilled")
	}
}

func TestFilterRequests(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	mustCreate(t, s, models.Request{Type: models.TypeWarehouse, ItemName: "Gloves", UserName: "ممر1"})
	mustCreate(t, s, models.Request{Type: models.TypeHR, ItemName: "contract", UserName: "ممر2", Notes: "annual leave"})
	mustCreate(t, s, models.Request{Type: models.TypeWarehouse, ItemName: "tape", UserName: "ممر3"})

	cases := []struct {
		name   string
		filter RequestFilter
		want   int
	}{
		{"by type", RequestFilter{Type: models.TypeWarehouse}, 2},
		{"by status", RequestFilter{Status: models.StatusPending}, 3},
		{"search item name case-insensitive", RequestFilter{Search: "gLoVeS"}, 1},
		{"search user name", RequestFilter{Search: "ممر2"}, 1},
		{"search notes", RequestFilter{Search: "leave"}, 1},
		{"no match", RequestFilter{Search: "missing"}, 0},
	}
	for _, tc := range cases {
		got, err := s.FilterRequests(ctx, tc.filter)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(got) != tc.want {
			t.Fatalf("%s: got %d records, want %d", tc.name, len(got), tc.want)
		}
	}
}

func TestCorruptBlobTreatedAsEmpty(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.backend.Write(ctx, KeyAllRequests, []byte("{not json")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	all, err := s.Requests(ctx)
	if err != nil {
		t.Fatalf("corrupt blob must not surface an error, got %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("corrupt blob should read as empty, got %+v", all)
	}

	// The store must stay usable afterwards.
	created := mustCreate(t, s, models.Request{ItemName: "gloves", UserName: "ممر1"})
	all, _ = s.Requests(ctx)
	if len(all) != 1 || all[0].ID != created.ID {
		t.Fatalf("store unusable after corruption: %+v", all)
	}
}
