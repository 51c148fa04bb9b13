// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Roles

// UserRole is the access level carried by a token.
type UserRole string

const (
	// Full access.
	RoleAdmin UserRole = "admin"

	// May create, edit and delete individuals and relationships.
	RoleEditor UserRole = "editor"

	// Read-only; the same as anonymous access today.
	RoleViewer UserRole = "viewer"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// AtLeast reports whether r meets or exceeds target.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleViewer:
		return 10
	}
	return 0
}
