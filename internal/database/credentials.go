// server/internal/database/credentials.go
package database

import (
	"fmt"

	"lane-supply-api-server/internal/models"
)

// Credential is one row of the fixed account table before hashing.
type Credential struct {
	Username    string
	Password    string
	Role        models.Role
	DisplayName string
	Avatar      string
}

// DefaultCredentials is the static account table: ten lane stations, the
// warehouse manager and the HR administrator. Accounts are never created or
// destroyed at runtime.
func DefaultCredentials() []Credential {
	creds := make([]Credential, 0, 12)
	for i := 1; i <= 10; i++ {
		creds = append(creds, Credential{
			Username:    fmt.Sprintf("ممر%d", i),
			Password:    "123456",
			Role:        models.RoleWorker,
			DisplayName: fmt.Sprintf("ممر %d", i),
			Avatar:      "👷",
		})
	}
	creds = append(creds,
		Credential{
			Username:    "warehouse",
			Password:    "wh2024",
			Role:        models.RoleWarehouse,
			DisplayName: "مدير المستودع",
			Avatar:      "📦",
		},
		Credential{
			Username:    "hr",
			Password:    "hr2024",
			Role:        models.RoleHR,
			DisplayName: "الموارد البشرية",
			Avatar:      "🧑‍💼",
		},
	)
	return creds
}

// LookupCredential returns the table row for a username, or nil. Exact
// string match, no normalization.
func LookupCredential(username string) *Credential {
	for _, c := range DefaultCredentials() {
		if c.Username == username {
			cred := c
			return &cred
		}
	}
	return nil
}
