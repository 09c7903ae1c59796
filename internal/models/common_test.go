package models

import (
	"encoding/json"
	"testing"
)

func TestFlexIntUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want FlexInt
	}{
		{`7`, 7},
		{`"7"`, 7},
		{`3.9`, 3},
		{`"2.5"`, 2},
		{`0`, 1},
		{`-4`, 1},
		{`"garbage"`, 1},
		{`""`, 1},
		{`null`, 1},
	}
	for _, tc := range cases {
		var q FlexInt
		if err := json.Unmarshal([]byte(tc.in), &q); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tc.in, err)
		}
		if q != tc.want {
			t.Fatalf("Unmarshal(%s) = %d, want %d", tc.in, q, tc.want)
		}
	}
}

func TestFlexIntMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		Quantity FlexInt `json:"quantity"`
	}{Quantity: 5})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"quantity":5}` {
		t.Fatalf("Marshal = %s", out)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleWorker, RoleWarehouse, RoleHR} {
		if !r.Valid() {
			t.Fatalf("role %s should be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Fatal("unknown role accepted")
	}
}

func TestTransientStatusNotStorable(t *testing.T) {
	if StatusTransferToHR.Valid() {
		t.Fatal("transfer_to_hr must not be a storable status")
	}
	for _, s := range []RequestStatus{StatusPending, StatusApproved, StatusRejected, StatusInProgress, StatusDelivered} {
		if !s.Valid() {
			t.Fatalf("status %s should be storable", s)
		}
	}
}
