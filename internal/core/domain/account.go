package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account models a registered marketplace identity.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of the account without its credential.
func (a *Account) Public() *Account {
	if a == nil {
		return nil
	}
	clone := *a
	clone.PasswordHash = ""
	return &clone
}

// HasRole reports whether the account's role is one of roles.
func (a *Account) HasRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is a known account role.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
