package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
)

func draftOrder(userID *string) domain.Order {
	return domain.Order{
		UserID:        userID,
		CustomerName:  " Alice ",
		CustomerEmail: " Alice@Example.com ",
		TotalAmount:   43,
		ShippingAddress: domain.ShippingAddress{
			Name:       "Alice",
			Line1:      "1 Main St ",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62701",
			Country:    "US",
		},
		Items: []domain.OrderItem{
			{ProductID: "PROD-1", ProductName: "Benchy ", ProductImage: "/img/benchy.png", Quantity: 2, PriceAtPurchase: 14},
			{ProductID: "PROD-2", ProductName: "Vase", ProductImage: "/img/vase.png", Quantity: 1, PriceAtPurchase: 15},
		},
	}
}

func TestOrderStore_CreateAssignsIDAndDefaults(t *testing.T) {
	orders := NewOrderStore(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	order, err := orders.Create(ctx, draftOrder(nil))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "ORDER-"))
	assert.Nil(t, order.UserID)
	assert.Equal(t, "Alice", order.CustomerName)
	assert.Equal(t, "alice@example.com", order.CustomerEmail)
	assert.Equal(t, "1 Main St", order.ShippingAddress.Line1)
	assert.Equal(t, "Benchy", order.Items[0].ProductName)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
}

func TestOrderStore_CreateClampsNegativeTotal(t *testing.T) {
	orders := NewOrderStore(t.TempDir(), zap.NewNop())

	draft := draftOrder(nil)
	draft.TotalAmount = -10
	order, err := orders.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.TotalAmount)
}

func TestOrderStore_ApplyPatchPreservesIdentityFields(t *testing.T) {
	orders := NewOrderStore(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	created, err := orders.Create(ctx, draftOrder(nil))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	shipped := domain.OrderStatusShipped
	updated, err := orders.ApplyPatch(ctx, created.ID, domain.OrderStatusPatch{Status: &shipped})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	assert.Equal(t, created.PaymentStatus, updated.PaymentStatus)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.Items, updated.Items)
}

func TestOrderStore_ApplyPatchUnknownID(t *testing.T) {
	orders := NewOrderStore(t.TempDir(), zap.NewNop())

	shipped := domain.OrderStatusShipped
	_, err := orders.ApplyPatch(context.Background(), "ORDER-missing", domain.OrderStatusPatch{Status: &shipped})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderStore_FindByUser(t *testing.T) {
	orders := NewOrderStore(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	alice := "USER-alice"
	bob := "USER-bob"
	_, err := orders.Create(ctx, draftOrder(&alice))
	require.NoError(t, err)
	_, err = orders.Create(ctx, draftOrder(&bob))
	require.NoError(t, err)
	_, err = orders.Create(ctx, draftOrder(nil))
	require.NoError(t, err)

	mine, err := orders.FindByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].UserID)
	assert.Equal(t, alice, *mine[0].UserID)

	all, err := orders.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := NewOrderStore(dir, zap.NewNop())
	created, err := first.Create(ctx, draftOrder(nil))
	require.NoError(t, err)

	second := NewOrderStore(dir, zap.NewNop())
	found, err := second.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.TotalAmount, found.TotalAmount)
	assert.Equal(t, created.Items, found.Items)
}
