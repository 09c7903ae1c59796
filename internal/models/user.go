// server/internal/models/user.go
package models

// Role is the closed set of dashboard roles.
type Role string

const (
	RoleWorker    Role = "worker"    // lane station (ممر)
	RoleWarehouse Role = "warehouse" // warehouse manager
	RoleHR        Role = "hr"        // HR administrator
)

func (r Role) Valid() bool {
	switch r {
	case RoleWorker, RoleWarehouse, RoleHR:
		return true
	}
	return false
}

// User matches the document in the "users" collection. The account table is
// fixed: it is seeded once at startup and never mutated at runtime.
type User struct {
	Username    string `bson:"username" json:"username"`
	Password    string `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role        Role   `bson:"role" json:"role"`
	DisplayName string `bson:"displayName" json:"display_name"`
	Avatar      string `bson:"avatar" json:"avatar"`
}

// PublicUser is the password-less projection stored in backup snapshots and
// returned by the API.
type PublicUser struct {
	Username    string `json:"username"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		Username:    u.Username,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}
