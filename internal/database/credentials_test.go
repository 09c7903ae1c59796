package database

import (
	"testing"

	"lane-supply-api-server/internal/auth"
	"lane-supply-api-server/internal/models"
)

func TestDefaultCredentialsTable(t *testing.T) {
	creds := DefaultCredentials()
	if len(creds) != 12 {
		t.Fatalf("account table has %d rows, want 12", len(creds))
	}

	workers := 0
	for _, c := range creds {
		if !c.Role.Valid() {
			t.Fatalf("invalid role for %s: %s", c.Username, c.Role)
		}
		if c.Role == models.RoleWorker {
			workers++
			if c.Password != "123456" {
				t.Fatalf("lane %s has wrong password", c.Username)
			}
		}
	}
	if workers != 10 {
		t.Fatalf("expected 10 lane accounts, got %d", workers)
	}
}

func TestLookupCredential(t *testing.T) {
	cases := []struct {
		username string
		found    bool
		role     models.Role
	}{
		{"ممر1", true, models.RoleWorker},
		{"ممر10", true, models.RoleWorker},
		{"warehouse", true, models.RoleWarehouse},
		{"hr", true, models.RoleHR},
		{"ممر11", false, ""},
		{"Warehouse", false, ""}, // exact match only
		{"", false, ""},
	}
	for _, tc := range cases {
		cred := LookupCredential(tc.username)
		if tc.found != (cred != nil) {
			t.Fatalf("LookupCredential(%q) found=%v, want %v", tc.username, cred != nil, tc.found)
		}
		if cred != nil && cred.Role != tc.role {
			t.Fatalf("LookupCredential(%q) role=%s, want %s", tc.username, cred.Role, tc.role)
		}
	}
}

func TestCredentialHashRoundTrip(t *testing.T) {
	cred := LookupCredential("warehouse")
	if cred == nil {
		t.Fatal("warehouse credential missing")
	}
	hash, err := auth.HashPassword(cred.Password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !auth.CheckPasswordHash(cred.Password, hash) {
		t.Fatal("correct password rejected")
	}
	if auth.CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}
