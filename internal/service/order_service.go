package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
	"github.com/spec-kit/print-shop/internal/events"
	"github.com/spec-kit/print-shop/internal/store"
	apperrors "github.com/spec-kit/print-shop/pkg/util"
)

// TestCardNumber is the only card the mock checkout accepts as paid.
const TestCardNumber = "4242424242424242"

// OrderService coordinates checkout and order lifecycle workflows.
type OrderService struct {
	orders     store.OrderStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(orders store.OrderStore, dispatcher events.Dispatcher, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, dispatcher: dispatcher, logger: logger}
}

// CheckoutItem is a submitted order line. Name, image, and price are taken as
// purchase-time snapshots rather than re-read from the catalog.
type CheckoutItem struct {
	ProductID       string
	ProductName     string
	ProductImage    string
	Quantity        int
	PriceAtPurchase float64
}

// CheckoutInput describes the mock checkout payload. UserID is nil for guest
// checkouts.
type CheckoutInput struct {
	UserID          *string
	CustomerName    string
	CustomerEmail   string
	ShippingAddress domain.ShippingAddress
	Items           []CheckoutItem
	CardNumber      string
}

// Checkout validates the input, runs the mock card check, and persists the
// order. A non-test card records the order with paymentStatus=failed.
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error) {
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, apperrors.NewValidationError("customer name and email required", nil)
	}
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("order must contain at least one item", nil)
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	total := 0.0
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, apperrors.NewValidationError("item quantity must be at least 1", map[string]any{"product_id": line.ProductID})
		}
		if line.PriceAtPurchase < 0 {
			return nil, apperrors.NewValidationError("item price must be non-negative", map[string]any{"product_id": line.ProductID})
		}
		items = append(items, domain.OrderItem{
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			ProductImage:    line.ProductImage,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.PriceAtPurchase,
		})
		total += float64(line.Quantity) * line.PriceAtPurchase
	}

	paymentStatus := domain.PaymentStatusFailed
	if normalizeCardNumber(input.CardNumber) == TestCardNumber {
		paymentStatus = domain.PaymentStatusPaid
	}

	order, err := s.orders.Create(ctx, domain.Order{
		UserID:          input.UserID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   paymentStatus,
		ShippingAddress: input.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("customer_email", order.CustomerEmail),
		zap.Float64("total_amount", order.TotalAmount),
		zap.String("payment_status", string(order.PaymentStatus)))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderCreated,
			EntityID:  order.ID,
			Timestamp: time.Now(),
			Payload: events.OrderCreatedPayload{
				CustomerEmail: order.CustomerEmail,
				TotalAmount:   order.TotalAmount,
				ItemCount:     len(order.Items),
				PaymentStatus: order.PaymentStatus,
			},
		})
	}

	return order, nil
}

// UpdateStatus applies an admin status/payment patch. Unknown ids surface as
// not-found rather than silently succeeding.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, patch domain.OrderStatusPatch) (*domain.Order, error) {
	if patch.Status != nil && !domain.ValidOrderStatus(*patch.Status) {
		return nil, apperrors.NewValidationError("unknown order status", map[string]any{"status": *patch.Status})
	}
	if patch.PaymentStatus != nil && !domain.ValidPaymentStatus(*patch.PaymentStatus) {
		return nil, apperrors.NewValidationError("unknown payment status", map[string]any{"payment_status": *patch.PaymentStatus})
	}

	before, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}

	order, err := s.orders.ApplyPatch(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("order status updated",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
		zap.String("payment_status", string(order.PaymentStatus)))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			EntityID:  order.ID,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OldStatus:  before.Status,
				NewStatus:  order.Status,
				OldPayment: before.PaymentStatus,
				NewPayment: order.PaymentStatus,
			},
		})
	}

	return order, nil
}

// GetByID returns a single order.
func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return order, nil
}

// ListForUser returns the orders placed by a user.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return orders, nil
}

// ListAll returns every order for the admin view.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return orders, nil
}

func normalizeCardNumber(card string) string {
	return strings.ReplaceAll(strings.ReplaceAll(card, " ", ""), "-", "")
}
