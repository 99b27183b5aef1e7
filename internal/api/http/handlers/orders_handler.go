package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/print-shop/internal/api/dto"
	"github.com/spec-kit/print-shop/internal/auth"
	"github.com/spec-kit/print-shop/internal/domain"
	"github.com/spec-kit/print-shop/internal/service"
)

// OrdersHandler exposes checkout and order tracking endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Checkout handles POST /checkout. Guests are allowed; a bearer token links
// the order to the account.
func (h *OrdersHandler) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	var userID *string
	if principal, ok := auth.PrincipalFromContext(c); ok {
		id := principal.Identity.ID
		userID = &id
	}

	order, err := h.orders.Checkout(c.Context(), req.ToInput(userID))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": order})
}

// ListMine handles GET /orders.
func (h *OrdersHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	orders, err := h.orders.ListForUser(c.Context(), principal.Identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orders})
}

// GetByID handles GET /orders/:id. Customers only see their own orders;
// admins see everything.
func (h *OrdersHandler) GetByID(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	order, err := h.orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	if principal.Identity.Role != domain.RoleAdmin {
		if order.UserID == nil || *order.UserID != principal.Identity.ID {
			return fiber.NewError(http.StatusForbidden, "not your order")
		}
	}
	return c.JSON(fiber.Map{"data": order})
}

// ListAll handles GET /admin/orders.
func (h *OrdersHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orders})
}

// Patch handles PATCH /admin/orders/:id.
func (h *OrdersHandler) Patch(c *fiber.Ctx) error {
	var req dto.OrderPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	order, err := h.orders.UpdateStatus(c.Context(), c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": order})
}
