// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// RoleAdmin can read every deck regardless of privacy.
	RoleAdmin UserRole = "admin"

	// RoleMember is the default role for registered deck builders.
	RoleMember UserRole = "member"
)

// CanReadPrivate reports whether the role may view decks it does not own.
func (r UserRole) CanReadPrivate() bool {
	return r == RoleAdmin
}
