package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/print-shop/internal/api/dto"
	"github.com/spec-kit/print-shop/internal/store"
)

// SettingsHandler exposes the admin shop-settings endpoints.
type SettingsHandler struct {
	settings store.SettingsStore
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /admin/settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settings})
}

// Update handles PUT /admin/settings.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.SettingsPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	settings, err := h.settings.Update(c.Context(), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settings})
}
