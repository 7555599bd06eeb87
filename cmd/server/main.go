package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"github.com/fernandoludvig/finance-api/internal/config"
	"github.com/fernandoludvig/finance-api/internal/database"
	"github.com/fernandoludvig/finance-api/internal/handlers"
	"github.com/fernandoludvig/finance-api/internal/logging"
	"github.com/fernandoludvig/finance-api/internal/middleware"
	"github.com/fernandoludvig/finance-api/internal/profile"
	"github.com/fernandoludvig/finance-api/internal/repository/memory"
	"github.com/fernandoludvig/finance-api/internal/repository/mongodb"
	"github.com/fernandoludvig/finance-api/internal/routes"
	"github.com/fernandoludvig/finance-api/internal/services"
)

type repositories struct {
	users        services.UserRepository
	products     services.ProductRepository
	transactions services.TransactionRepository
	categories   services.CategoryRepository
	budgets      services.BudgetRepository
	pinger       handlers.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Env,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Storage
	var (
		repos repositories
		mongo *database.Mongo
	)
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = repositories{
			users:        store.Users,
			products:     store.Products,
			transactions: store.Transactions,
			categories:   store.Categories,
			budgets:      store.Budgets,
			pinger:       store,
		}
		slog.Warn("using in-memory storage; data is lost on restart")
	default:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
		mongo, err = database.ConnectMongo(ctx, cfg)
		if err == nil {
			err = mongodb.EnsureIndexes(ctx, mongo.DB)
		}
		cancel()
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		repos = repositories{
			users:        mongodb.NewUserRepository(mongo.DB),
			products:     mongodb.NewProductRepository(mongo.DB),
			transactions: mongodb.NewTransactionRepository(mongo.DB),
			categories:   mongodb.NewCategoryRepository(mongo.DB),
			budgets:      mongodb.NewBudgetRepository(mongo.DB),
			pinger:       mongo,
		}
	}

	// Optional PostgreSQL log sink (ERROR+ async batch)
	var (
		logDB        *gorm.DB
		storeHandler *logging.StoreHandler
	)
	cleanupDone := make(chan struct{})
	if cfg.LogDatabaseURL != "" {
		logDB, err = database.ConnectLogDB(cfg.LogDatabaseURL)
		if err != nil {
			slog.Error("log database unavailable; errors go to stdout only", "error", err)
		} else {
			storeHandler = logging.NewStoreHandler(logging.NewGormSink(logDB))
			slog.SetDefault(slog.New(logging.NewMultiHandler(
				logging.NewJSONHandler(os.Stdout, logging.ParseLevel(cfg.LogLevel)),
				storeHandler,
			)))
			logging.StartCleanup(logDB, cfg.LogRetentionDays, cleanupDone)
		}
	}

	// Services
	authService := services.NewAuthService(repos.users, cfg)
	userService := services.NewUserService(repos.users, cfg)
	productService := services.NewProductService(repos.products)
	categoryService := services.NewCategoryService(repos.categories)
	budgetService := services.NewBudgetService(repos.budgets, repos.categories)
	transactionService := services.NewTransactionService(repos.transactions, budgetService)
	authService.OnUserCreated(categoryService.SeedDefaults)

	var google services.OAuthProvider
	if p := services.NewGoogleProvider(cfg); p != nil {
		google = p
	} else {
		slog.Info("google oauth disabled; GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET missing")
	}

	professional, err := profile.Load(cfg.ProfessionalProfilePath)
	if err != nil {
		slog.Error("failed to load professional profile", "error", err)
		os.Exit(1)
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.NewErrorHandler(!cfg.IsProduction()),
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.Security())

	routes.Setup(app, cfg, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, google, cfg),
		User:        handlers.NewUserHandler(userService),
		Product:     handlers.NewProductHandler(productService),
		Transaction: handlers.NewTransactionHandler(transactionService),
		Category:    handlers.NewCategoryHandler(categoryService),
		Budget:      handlers.NewBudgetHandler(budgetService),
		Health:      handlers.NewHealthHandler(repos.pinger),
		Site:        handlers.NewSiteHandler(professional),
	}, authService, userService)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "storage", cfg.Storage)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if storeHandler != nil {
		storeHandler.Stop()
	}
	if logDB != nil {
		if err := database.CloseLogDB(logDB); err != nil {
			slog.Error("log database close error", "error", err)
		}
	}
	if mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := mongo.Disconnect(ctx); err != nil {
			slog.Error("database close error", "error", err)
		}
		cancel()
	}
	sentry.Flush(2 * time.Second)

	slog.Info("server stopped")
}
