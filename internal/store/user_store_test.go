package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
)

func newTestUserStore(t *testing.T) UserStore {
	t.Helper()
	return NewUserStore(t.TempDir(), zap.NewNop())
}

func TestUserStore_CreateNormalizesAndStamps(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()

	user, err := users.Create(ctx, "  Alice  ", " Alice@Example.COM ", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(user.ID, "USER-"))
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserStore_EmailUniquenessIsCaseInsensitive(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "Alice", "alice@example.com", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = users.Create(ctx, "Imposter", "ALICE@example.com", "hash2", domain.RoleCustomer)
	require.ErrorIs(t, err, ErrEmailTaken)

	all, err := users.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserStore_FindByEmailNormalizesLookup(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()

	created, err := users.Create(ctx, "Alice", "alice@example.com", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	found, err := users.FindByEmail(ctx, "  ALICE@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_UpdateProfilePatchesOnlyGivenFields(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()

	created, err := users.Create(ctx, "Alice", "alice@example.com", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	newName := "Alice B"
	updated, err := users.UpdateProfile(ctx, created.ID, domain.UserProfilePatch{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUserStore_UpdateProfileRejectsTakenEmail(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "Alice", "alice@example.com", "hash", domain.RoleCustomer)
	require.NoError(t, err)
	bob, err := users.Create(ctx, "Bob", "bob@example.com", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	taken := "Alice@example.com"
	_, err = users.UpdateProfile(ctx, bob.ID, domain.UserProfilePatch{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserStore_HasAdminAccount(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()

	has, err := users.HasAdminAccount(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = users.Create(ctx, "Alice", "alice@example.com", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	has, err = users.HasAdminAccount(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = users.Create(ctx, "Root", "admin@example.com", "hash", domain.RoleAdmin)
	require.NoError(t, err)

	has, err = users.HasAdminAccount(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestUserStore_Delete(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()

	created, err := users.Create(ctx, "Alice", "alice@example.com", "hash", domain.RoleCustomer)
	require.NoError(t, err)

	deleted, err := users.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = users.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
