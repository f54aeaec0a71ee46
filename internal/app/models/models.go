package models

import "strings"

// Role is the role string stored on users.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
)

// Permission names a guarded group of actions.
type Permission string

const (
	// PermManageMasterData covers authors, study programs, categories, pages, posts and users.
	PermManageMasterData Permission = "manage_master_data"
	// PermManageOutputs covers books, HKI, publications, research and services.
	PermManageOutputs Permission = "manage_outputs"
)

var rolePermissions = map[Role][]Permission{
	RoleSuperadmin: {PermManageMasterData, PermManageOutputs},
	RoleAdmin:      {PermManageOutputs},
}

// ParseRole normalizes a stored role string. Unknown roles are returned as-is and
// allow nothing.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Allows reports whether the role grants the permission.
func (r Role) Allows(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// AuthorSummary is the eager loaded author shape attached to output records.
type AuthorSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	NIDN    string `json:"nidn"`
	SintaID string `json:"sinta_id"`
}

// CreatorsOf joins author names the way the creators column stores them.
func CreatorsOf(authors []AuthorSummary) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
