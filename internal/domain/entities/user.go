package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles. The set is closed: role comparisons happen
// on these values, never on framework role strings.
type UserRole string

const (
	RoleUser      UserRole = "USER"
	RoleStaff     UserRole = "STAFF"
	RoleAdmin     UserRole = "ADMIN"
	RoleFundOwner UserRole = "FUND_OWNER"
)

// rolePrefix is the convention used when a role is projected into an
// authorization-framework role string at a gateway boundary.
const rolePrefix = "ROLE_"

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin, RoleFundOwner:
		return true
	}
	return false
}

// Authority returns the prefixed authorization-framework representation,
// e.g. "ROLE_USER". This is the only place the prefix convention lives.
func (r UserRole) Authority() string {
	return rolePrefix + string(r)
}

// ParseRole maps a raw claim string back onto the closed role set.
func ParseRole(s string) (UserRole, bool) {
	r := UserRole(s)
	return r, r.Valid()
}

// User represents a user account
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	FullName     string      `json:"fullName"`
	PhoneNumber  null.String `json:"phoneNumber,omitempty"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	IsActive     bool        `json:"isActive"`
	Verified     bool        `json:"verified"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// UpdateUserInput represents the fields a user may change on their profile
type UpdateUserInput struct {
	FullName    string `json:"fullName" binding:"omitempty,min=2,max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=20"`
}
