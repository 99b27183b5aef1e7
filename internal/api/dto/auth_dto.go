package dto

import (
	"time"

	"github.com/spec-kit/print-shop/internal/domain"
)

// RegisterRequest payload for new customer accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminSetupRequest payload for the one-time admin bootstrap.
type AdminSetupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	SetupSecret string `json:"setupSecret"`
}

// ProfileUpdateRequest payload for profile edits.
type ProfileUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// PasswordChangeRequest payload for password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityResponse mirrors the session claims.
type IdentityResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// IdentityFromDomain maps an identity to its response shape.
func IdentityFromDomain(identity domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
		Role:  identity.Role,
	}
}
