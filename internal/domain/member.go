package domain

import "time"

// Role of a member within a group roster.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Member is one entry in a group roster. The identity itself is owned by the
// external user directory; Name and Email are display metadata resolved from
// it. A member is immutable once added, except for its role.
type Member struct {
	ID       string
	Name     string
	Email    string
	Role     Role
	JoinedAt time.Time
}

// DirectoryEntry is the display metadata the external user directory holds
// for one identity.
type DirectoryEntry struct {
	ID    string
	Name  string
	Email string
}
