package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/print-shop/internal/config"
	"github.com/spec-kit/print-shop/internal/domain"
	"github.com/spec-kit/print-shop/internal/service"
	"github.com/spec-kit/print-shop/internal/store"
	apperrors "github.com/spec-kit/print-shop/pkg/util"
)

const testSetupSecret = "test-setup-secret"

func newTestAuthService(t *testing.T) (*service.AuthService, store.UserStore) {
	t.Helper()
	users := store.NewUserStore(t.TempDir(), zap.NewNop())
	cfg := config.Config{
		Auth: config.AuthConfig{
			SessionSecret:  "test-session-secret",
			SetupSecret:    testSetupSecret,
			SessionTTLDays: 30,
			BcryptCost:     bcrypt.MinCost,
		},
	}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		UserStore: users,
		Logger:    zap.NewNop(),
	})
	return svc, users
}

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterCustomer(ctx, "Alice", "alice@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEqual(t, "Passw0rd!", user.PasswordHash)

	identity, token, _, err := svc.Authenticate(ctx, "alice@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_AuthenticateFailures(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterCustomer(ctx, "Alice", "alice@example.com", "Passw0rd!")
	require.NoError(t, err)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "Passw0rd!"},
		{"missing password", "alice@example.com", ""},
		{"unknown email", "bob@example.com", "Passw0rd!"},
		{"wrong password", "alice@example.com", "wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Authenticate(ctx, tc.email, tc.password)
			require.Error(t, err)
			// Failure reason must stay generic.
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
			assert.Equal(t, "invalid credentials", domainErr.Message)
		})
	}
}

func TestAuthService_DuplicateRegistrationConflicts(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterCustomer(ctx, "Alice", "alice@example.com", "Passw0rd!")
	require.NoError(t, err)

	_, err = svc.RegisterCustomer(ctx, "Imposter", "ALICE@example.com", "Other1!")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	all, err := users.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAuthService_AdminBootstrapGate(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	// Wrong secret rejected without leaking the expected value.
	_, err := svc.CreateAdminAccount(ctx, "admin@example.com", "Adm1nPass!", "Root", "wrong")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	assert.NotContains(t, domainErr.Message, testSetupSecret)

	// Correct secret succeeds once.
	admin, err := svc.CreateAdminAccount(ctx, "admin@example.com", "Adm1nPass!", "Root", testSetupSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	has, err := users.HasAdminAccount(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	// Second bootstrap fails even with the correct secret.
	_, err = svc.CreateAdminAccount(ctx, "other@example.com", "Adm1nPass!", "Root2", testSetupSecret)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestAuthService_SessionRefreshPropagation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterCustomer(ctx, "A", "alice@example.com", "Passw0rd!")
	require.NoError(t, err)

	_, token, _, err := svc.Authenticate(ctx, "alice@example.com", "Passw0rd!")
	require.NoError(t, err)

	newName := "B"
	_, err = svc.UpdateProfile(ctx, user.ID, domain.UserProfilePatch{Name: &newName})
	require.NoError(t, err)

	// The issued token still reports the stale name until the refresh hook runs.
	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "A", claims.Name)

	identity, refreshed, _, err := svc.RefreshSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "B", identity.Name)

	claims, err = svc.TokenManager().Parse(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "B", claims.Name)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterCustomer(ctx, "Alice", "alice@example.com", "Passw0rd!")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong", "NewPass1!")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "Passw0rd!", "NewPass1!"))

	_, _, _, err = svc.Authenticate(ctx, "alice@example.com", "Passw0rd!")
	require.Error(t, err)
	_, _, _, err = svc.Authenticate(ctx, "alice@example.com", "NewPass1!")
	assert.NoError(t, err)
}
