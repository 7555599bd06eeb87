package routes

import (
	"github.com/fernandoludvig/finance-api/internal/config"
	"github.com/fernandoludvig/finance-api/internal/handlers"
	"github.com/fernandoludvig/finance-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Product     *handlers.ProductHandler
	Transaction *handlers.TransactionHandler
	Category    *handlers.CategoryHandler
	Budget      *handlers.BudgetHandler
	Health      *handlers.HealthHandler
	Site        *handlers.SiteHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	h Handlers,
	users middleware.UserLoader,
	admins middleware.AdminChecker,
) {
	jwt := middleware.JWTProtected(cfg)

	// Personal site and docs
	app.Get("/", h.Site.Root)
	app.Get("/professional", h.Site.Professional)
	app.Get("/api-docs", h.Site.DocsUI)
	app.Get("/api-docs/openapi.yaml", h.Site.DocsSpec)

	api := app.Group("/api")
	if cfg.RateLimitMax > 0 {
		api.Use(middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	api.Get("/health", h.Health.Check)

	// Auth, with a stricter limit on credential endpoints
	auth := api.Group("/auth")
	if cfg.AuthRateLimitMax > 0 {
		auth.Use(middleware.RateLimit(cfg.AuthRateLimitMax, cfg.RateLimitWindow))
	}
	auth.Get("/health", h.Health.Check)
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)
	auth.Get("/profile", jwt, middleware.LoadCurrentUser(users), h.Auth.Profile)
	auth.Get("/google", h.Auth.GoogleLogin)
	auth.Get("/google/callback", h.Auth.GoogleCallback)
	if !cfg.IsProduction() {
		auth.Post("/token", h.Auth.TestToken)
	}

	// Users: listing and creation are admin-only, the rest is self or admin
	userRoutes := api.Group("/users", jwt)
	userRoutes.Get("/", middleware.AdminRequired(admins), h.User.List)
	userRoutes.Post("/", middleware.AdminRequired(admins), h.User.Create)
	userRoutes.Get("/:id", h.User.Get)
	userRoutes.Put("/:id", h.User.Update)
	userRoutes.Delete("/:id", h.User.Delete)

	// Products: public reads
	products := api.Group("/products")
	products.Get("/", h.Product.List)
	products.Get("/:id", h.Product.Get)
	products.Post("/", jwt, h.Product.Create)
	products.Put("/:id", jwt, h.Product.Update)
	products.Delete("/:id", jwt, h.Product.Delete)

	transactions := api.Group("/transactions", jwt)
	transactions.Get("/", h.Transaction.List)
	transactions.Get("/summary", h.Transaction.Summary)
	transactions.Get("/:id", h.Transaction.Get)
	transactions.Post("/", h.Transaction.Create)
	transactions.Put("/:id", h.Transaction.Update)
	transactions.Delete("/:id", h.Transaction.Delete)

	categories := api.Group("/categories", jwt)
	categories.Get("/", h.Category.List)
	categories.Get("/:id", h.Category.Get)
	categories.Post("/", h.Category.Create)
	categories.Put("/:id", h.Category.Update)
	categories.Delete("/:id", h.Category.Delete)

	budgets := api.Group("/budgets", jwt)
	budgets.Get("/", h.Budget.List)
	budgets.Get("/current", h.Budget.Current)
	budgets.Get("/summary", h.Budget.Summary)
	budgets.Get("/:id", h.Budget.Get)
	budgets.Post("/", h.Budget.Create)
	budgets.Put("/:id", h.Budget.Update)
	budgets.Delete("/:id", h.Budget.Delete)
}
