package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/print-shop/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "USER-1",
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleCustomer,
	}
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, exp, err := tm.Issue(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), exp, time.Minute)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "USER-1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, domain.RoleCustomer, claims.Role)

	identity := claims.Identity()
	assert.Equal(t, domain.Identity{ID: "USER-1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleCustomer}, identity)
}

func TestTokenManager_ClaimsAreACacheOfIssueTimeState(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)
	user := testUser()

	token, _, err := tm.Issue(user)
	require.NoError(t, err)

	// Mutating the user afterwards must not affect an already-issued token.
	user.Name = "Renamed"
	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 30).Parse(token)
	assert.Error(t, err)
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("s", 0)
	_, exp, err := tm.Issue(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), exp, time.Minute)
}
