package domain

import "time"

// Role separates storefront customers from back-office administrators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the domain model for storefront accounts.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the minimal tuple produced by successful authentication and
// carried inside session tokens.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Identity strips credential material from a User.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// UserProfilePatch restricts profile updates to the mutable fields. Password
// changes go through a separate operation so the hash never rides along with
// profile edits.
type UserProfilePatch struct {
	Name  *string
	Email *string
}
