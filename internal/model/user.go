package model

import "time"

// UserRole is the coarse authorization role stored on a user record.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// IsValidUserRole reports whether r is one of the allowed roles.
func IsValidUserRole(r UserRole) bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

// User is an end-user account. Identity is delegated to the hosted identity
// provider; ClerkID links the local record to the provider's subject.
type User struct {
	ID              string    `json:"id"`
	ClerkID         string    `json:"clerkId,omitempty"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            UserRole  `json:"role"`
	SavedProperties []string  `json:"savedProperties"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
