package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
	"github.com/spec-kit/print-shop/internal/service"
	"github.com/spec-kit/print-shop/internal/store"
	apperrors "github.com/spec-kit/print-shop/pkg/util"
)

func newTestOrderService(t *testing.T) *service.OrderService {
	t.Helper()
	orders := store.NewOrderStore(t.TempDir(), zap.NewNop())
	return service.NewOrderService(orders, nil, zap.NewNop())
}

func checkoutInput(card string) service.CheckoutInput {
	return service.CheckoutInput{
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		ShippingAddress: domain.ShippingAddress{
			Name: "Alice", Line1: "1 Main St", City: "Springfield",
			State: "IL", PostalCode: "62701", Country: "US",
		},
		Items: []service.CheckoutItem{
			{ProductID: "PROD-1", ProductName: "Benchy", ProductImage: "/img/benchy.png", Quantity: 2, PriceAtPurchase: 14},
			{ProductID: "PROD-2", ProductName: "Vase", ProductImage: "/img/vase.png", Quantity: 1, PriceAtPurchase: 15},
		},
		CardNumber: card,
	}
}

func TestOrderService_CheckoutWithTestCard(t *testing.T) {
	svc := newTestOrderService(t)

	order, err := svc.Checkout(context.Background(), checkoutInput("4242 4242 4242 4242"))
	require.NoError(t, err)

	assert.Equal(t, 43.0, order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	require.Len(t, order.Items, 2)
}

func TestOrderService_CheckoutWithOtherCardRecordsFailedPayment(t *testing.T) {
	svc := newTestOrderService(t)

	order, err := svc.Checkout(context.Background(), checkoutInput("4111 1111 1111 1111"))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, order.PaymentStatus)
}

func TestOrderService_CheckoutValidation(t *testing.T) {
	svc := newTestOrderService(t)
	ctx := context.Background()

	input := checkoutInput("4242424242424242")
	input.Items = nil
	_, err := svc.Checkout(ctx, input)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	input = checkoutInput("4242424242424242")
	input.Items[0].Quantity = 0
	_, err = svc.Checkout(ctx, input)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	input = checkoutInput("4242424242424242")
	input.CustomerEmail = "  "
	_, err = svc.Checkout(ctx, input)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestOrderService_ItemSnapshotsAreIndependentOfCatalog(t *testing.T) {
	dir := t.TempDir()
	products := store.NewProductStore(dir, zap.NewNop())
	orderSvc := service.NewOrderService(store.NewOrderStore(dir, zap.NewNop()), nil, zap.NewNop())
	ctx := context.Background()

	product, err := products.Create(ctx, domain.Product{
		Name: "Benchy", Slug: "benchy", Price: 14, ImageURL: "/img/benchy-v1.png",
	})
	require.NoError(t, err)

	input := checkoutInput("4242424242424242")
	input.Items = []service.CheckoutItem{{
		ProductID:       product.ID,
		ProductName:     product.Name,
		ProductImage:    product.ImageURL,
		Quantity:        1,
		PriceAtPurchase: product.Price,
	}}
	order, err := orderSvc.Checkout(ctx, input)
	require.NoError(t, err)

	// Rename the live product and swap its image.
	newName := "Benchy XL"
	newImage := "/img/benchy-v2.png"
	_, err = products.Update(ctx, product.ID, domain.ProductPatch{Name: &newName, ImageURL: &newImage})
	require.NoError(t, err)

	fetched, err := orderSvc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Benchy", fetched.Items[0].ProductName)
	assert.Equal(t, "/img/benchy-v1.png", fetched.Items[0].ProductImage)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	svc := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Checkout(ctx, checkoutInput("4242424242424242"))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	shipped := domain.OrderStatusShipped
	updated, err := svc.UpdateStatus(ctx, order.ID, domain.OrderStatusPatch{Status: &shipped})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	assert.True(t, updated.CreatedAt.Equal(order.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(order.UpdatedAt))
}

func TestOrderService_UpdateStatusRejectsUnknownValues(t *testing.T) {
	svc := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Checkout(ctx, checkoutInput("4242424242424242"))
	require.NoError(t, err)

	bogus := domain.OrderStatus("teleported")
	_, err = svc.UpdateStatus(ctx, order.ID, domain.OrderStatusPatch{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestOrderService_UpdateStatusUnknownOrder(t *testing.T) {
	svc := newTestOrderService(t)

	shipped := domain.OrderStatusShipped
	_, err := svc.UpdateStatus(context.Background(), "ORDER-missing", domain.OrderStatusPatch{Status: &shipped})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
