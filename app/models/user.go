package models

import (
	"strings"

	"gorm.io/gorm"
)

// Role names understood by the authorization layer.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRoles lists every role a user may be granted.
var ValidRoles = []string{RoleUser, RoleAdmin}

// User is the primary user model.
type User struct {
	gorm.Model
	Email    string  `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string  `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Active   bool    `gorm:"not null;default:true" json:"active"`
	Roles    string  `gorm:"size:255;not null;default:user" json:"roles"`
	Orders   []Order `json:"orders,omitempty"`
}

// RoleList returns the user's roles as a slice.
func (u *User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	return strings.Split(u.Roles, ",")
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// SetRoles replaces the user's role set. Unknown role names are dropped,
// duplicates collapse to one entry.
func (u *User) SetRoles(roles []string) {
	valid := make(map[string]bool, len(ValidRoles))
	for _, r := range ValidRoles {
		valid[r] = true
	}

	seen := make(map[string]bool, len(roles))
	kept := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if !valid[r] || seen[r] {
			continue
		}
		seen[r] = true
		kept = append(kept, r)
	}
	u.Roles = strings.Join(kept, ",")
}
