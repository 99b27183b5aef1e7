package events

import (
	"time"

	"github.com/spec-kit/print-shop/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventOrderCreated       EventType = "order_created"
	EventOrderStatusChanged EventType = "order_status_changed"
)

// Event represents a domain event emitted by services. EntityID references
// the user or order the event concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	CustomerEmail string               `json:"customer_email"`
	TotalAmount   float64              `json:"total_amount"`
	ItemCount     int                  `json:"item_count"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus  domain.OrderStatus   `json:"old_status"`
	NewStatus  domain.OrderStatus   `json:"new_status"`
	OldPayment domain.PaymentStatus `json:"old_payment"`
	NewPayment domain.PaymentStatus `json:"new_payment"`
}
