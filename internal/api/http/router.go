package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/print-shop/internal/api/http/handlers"
	"github.com/spec-kit/print-shop/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Orders         *handlers.OrdersHandler
	Catalog        *handlers.CatalogHandler
	Settings       *handlers.SettingsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/admin/setup", cfg.Auth.AdminSetup)
	authGroup.Post("/session/refresh", cfg.Auth.RefreshSession)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Patch("/profile", cfg.Auth.UpdateProfile)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	// Storefront browse endpoints are public.
	app.Get("/products", cfg.Catalog.ListProducts)
	app.Get("/products/:slug", cfg.Catalog.GetProduct)
	app.Get("/categories", cfg.Catalog.ListCategories)

	// Guest checkout is allowed; a token links the order to its account.
	app.Post("/checkout", cfg.AuthMiddleware.Optional, cfg.Orders.Checkout)

	orders := app.Group("/orders", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	orders.Get("/", cfg.Orders.ListMine)
	orders.Get("/:id", cfg.Orders.GetByID)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/orders", cfg.Orders.ListAll)
	admin.Patch("/orders/:id", cfg.Orders.Patch)
	admin.Post("/products", cfg.Catalog.CreateProduct)
	admin.Patch("/products/:id", cfg.Catalog.UpdateProduct)
	admin.Delete("/products/:id", cfg.Catalog.DeleteProduct)
	admin.Post("/categories", cfg.Catalog.CreateCategory)
	admin.Patch("/categories/:id", cfg.Catalog.UpdateCategory)
	admin.Delete("/categories/:id", cfg.Catalog.DeleteCategory)
	admin.Get("/settings", cfg.Settings.Get)
	admin.Put("/settings", cfg.Settings.Update)
}
