package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/print-shop/internal/persistence"
	"github.com/spec-kit/print-shop/internal/store"
)

// HealthHandler responds to liveness and readiness probes. Readiness reports
// the persistence mode of every store so operators can observe a degraded
// (memory-only) store before it loses data across a restart.
type HealthHandler struct {
	serviceName string
	version     string
	users       store.UserStore
	orders      store.OrderStore
	products    store.ProductStore
	categories  store.CategoryStore
	settings    store.SettingsStore
	redis       *persistence.Redis
}

// HealthDependencies bundles the probed components.
type HealthDependencies struct {
	Users      store.UserStore
	Orders     store.OrderStore
	Products   store.ProductStore
	Categories store.CategoryStore
	Settings   store.SettingsStore
	Redis      *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, deps HealthDependencies) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		users:       deps.Users,
		orders:      deps.Orders,
		products:    deps.Products,
		categories:  deps.Categories,
		settings:    deps.Settings,
		redis:       deps.Redis,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports store persistence modes and cache reachability. Degraded
// stores do not fail readiness: the service keeps serving from memory.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stores := fiber.Map{
		"users":      string(h.users.Mode()),
		"orders":     string(h.orders.Mode()),
		"products":   string(h.products.Mode()),
		"categories": string(h.categories.Mode()),
		"settings":   string(h.settings.Mode()),
	}

	cacheStatus := "ok"
	if err := h.redis.Ping(ctx); err != nil {
		cacheStatus = err.Error()
	}

	return c.JSON(fiber.Map{
		"status": "ready",
		"stores": stores,
		"cache":  cacheStatus,
	})
}
