package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/print-shop/internal/api/dto"
	"github.com/spec-kit/print-shop/internal/auth"
	"github.com/spec-kit/print-shop/internal/domain"
	"github.com/spec-kit/print-shop/internal/service"
)

// AuthHandler exposes credential and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.RegisterCustomer(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.IdentityFromDomain(user.Identity())},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	identity, token, exp, err := h.auth.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.IdentityFromDomain(*identity),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// AdminSetup handles POST /auth/admin/setup, the one-time bootstrap.
func (h *AuthHandler) AdminSetup(c *fiber.Ctx) error {
	var req dto.AdminSetupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.CreateAdminAccount(c.Context(), req.Email, req.Password, req.Name, req.SetupSecret)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.IdentityFromDomain(user.Identity())},
	})
}

// RefreshSession handles POST /auth/session/refresh. Clients call it after a
// profile update so the token claims are rebuilt from the store.
func (h *AuthHandler) RefreshSession(c *fiber.Ctx) error {
	tokenStr, err := bearerToken(c)
	if err != nil {
		return err
	}

	identity, token, exp, err := h.auth.RefreshSession(c.Context(), tokenStr)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.IdentityFromDomain(*identity),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// UpdateProfile handles PATCH /auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.Identity.ID, domain.UserProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"user": dto.IdentityFromDomain(user.Identity())},
	})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.auth.ChangePassword(c.Context(), principal.Identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fiber.NewError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
