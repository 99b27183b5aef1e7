package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/print-shop/internal/domain"
	apperrors "github.com/spec-kit/print-shop/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Identity is copied from the
// token claims without touching the user store; stale claims persist until
// the client runs the session-refresh protocol.
type Principal struct {
	Identity domain.Identity
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	claims, err := m.claimsFromRequest(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, &Principal{Identity: claims.Identity()})
	return c.Next()
}

// Optional loads a principal when a valid bearer token is present but lets
// anonymous requests through. Used for guest checkout.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}
	claims, err := m.claimsFromRequest(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, &Principal{Identity: claims.Identity()})
	return c.Next()
}

func (m *Middleware) claimsFromRequest(c *fiber.Ctx) (*SessionClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return claims, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
