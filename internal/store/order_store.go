package store

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
)

const ordersFile = "orders.json"

// OrderStore defines persistence access for orders.
type OrderStore interface {
	Create(ctx context.Context, draft domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	All(ctx context.Context) ([]domain.Order, error)
	ApplyPatch(ctx context.Context, id string, patch domain.OrderStatusPatch) (*domain.Order, error)
	Mode() PersistenceMode
}

type orderStore struct {
	*collection[domain.Order]
}

// NewOrderStore returns a JSON-file-backed implementation rooted at dataDir.
func NewOrderStore(dataDir string, logger *zap.Logger) OrderStore {
	return &orderStore{collection: newCollection[domain.Order](dataDir, ordersFile, logger)}
}

// Create assigns id and timestamps, trims string fields, clamps the total to
// non-negative, and defaults the lifecycle states. The draft's item lines are
// stored as submitted: they are purchase-time snapshots, not catalog lookups.
func (s *orderStore) Create(_ context.Context, draft domain.Order) (*domain.Order, error) {
	now := time.Now()
	order := draft
	order.ID = newRecordID("ORDER")
	order.CustomerName = strings.TrimSpace(draft.CustomerName)
	order.CustomerEmail = NormalizeEmail(draft.CustomerEmail)
	order.ShippingAddress = trimAddress(draft.ShippingAddress)
	order.Items = trimItems(draft.Items)
	if order.TotalAmount < 0 {
		order.TotalAmount = 0
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = domain.PaymentStatusPending
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	err := s.update(func(records []domain.Order) ([]domain.Order, error) {
		return append(records, order), nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for _, order := range s.snapshot() {
		if order.ID == id {
			o := order
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *orderStore) FindByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range s.snapshot() {
		if order.UserID != nil && *order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *orderStore) All(_ context.Context) ([]domain.Order, error) {
	return s.snapshot(), nil
}

// ApplyPatch mutates only the fields the patch type allows. ID and CreatedAt
// are preserved from the stored record; UpdatedAt is stamped on every patch.
func (s *orderStore) ApplyPatch(_ context.Context, id string, patch domain.OrderStatusPatch) (*domain.Order, error) {
	var updated *domain.Order
	err := s.update(func(records []domain.Order) ([]domain.Order, error) {
		for i, order := range records {
			if order.ID != id {
				continue
			}
			if patch.Status != nil {
				order.Status = *patch.Status
			}
			if patch.PaymentStatus != nil {
				order.PaymentStatus = *patch.PaymentStatus
			}
			if patch.StripePaymentID != nil {
				order.StripePaymentID = *patch.StripePaymentID
			}
			order.UpdatedAt = time.Now()
			records[i] = order
			updated = &order
			return records, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func trimAddress(addr domain.ShippingAddress) domain.ShippingAddress {
	return domain.ShippingAddress{
		Name:       strings.TrimSpace(addr.Name),
		Line1:      strings.TrimSpace(addr.Line1),
		Line2:      strings.TrimSpace(addr.Line2),
		City:       strings.TrimSpace(addr.City),
		State:      strings.TrimSpace(addr.State),
		PostalCode: strings.TrimSpace(addr.PostalCode),
		Country:    strings.TrimSpace(addr.Country),
	}
}

func trimItems(items []domain.OrderItem) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	for i, item := range items {
		item.ProductID = strings.TrimSpace(item.ProductID)
		item.ProductName = strings.TrimSpace(item.ProductName)
		item.ProductImage = strings.TrimSpace(item.ProductImage)
		out[i] = item
	}
	return out
}
