package dto

import (
	"github.com/spec-kit/print-shop/internal/domain"
	"github.com/spec-kit/print-shop/internal/service"
)

// CheckoutItemRequest is one submitted order line.
type CheckoutItemRequest struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductImage    string  `json:"productImage"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// CheckoutRequest payload for the mock checkout flow.
type CheckoutRequest struct {
	CustomerName    string                 `json:"customerName"`
	CustomerEmail   string                 `json:"customerEmail"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Items           []CheckoutItemRequest  `json:"items"`
	CardNumber      string                 `json:"cardNumber"`
}

// ToInput maps the request onto the service input, attaching the caller's
// user id when one is present.
func (r CheckoutRequest) ToInput(userID *string) service.CheckoutInput {
	items := make([]service.CheckoutItem, 0, len(r.Items))
	for _, line := range r.Items {
		items = append(items, service.CheckoutItem{
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			ProductImage:    line.ProductImage,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.PriceAtPurchase,
		})
	}
	return service.CheckoutInput{
		UserID:          userID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		ShippingAddress: r.ShippingAddress,
		Items:           items,
		CardNumber:      r.CardNumber,
	}
}

// OrderPatchRequest payload for the admin status update.
type OrderPatchRequest struct {
	Status          *domain.OrderStatus   `json:"status"`
	PaymentStatus   *domain.PaymentStatus `json:"paymentStatus"`
	StripePaymentID *string               `json:"stripePaymentId"`
}

// ToPatch maps the request onto the constrained patch type.
func (r OrderPatchRequest) ToPatch() domain.OrderStatusPatch {
	return domain.OrderStatusPatch{
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		StripePaymentID: r.StripePaymentID,
	}
}
