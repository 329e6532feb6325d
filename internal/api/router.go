package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bibliotekopol/library-system/internal/api/handler"
	"github.com/bibliotekopol/library-system/internal/api/middleware"
	"github.com/bibliotekopol/library-system/internal/core/service"
	"github.com/bibliotekopol/library-system/internal/infrastructure/config"
	mongodb "github.com/bibliotekopol/library-system/internal/infrastructure/db/mongo"
	redisdb "github.com/bibliotekopol/library-system/internal/infrastructure/db/redis"
	"github.com/bibliotekopol/library-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The route declarations below are the capability table: each operation
// names its allowed roles exactly once.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	events service.LoanEventSink,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("library"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	borrowRepo := mongodb.NewBorrowRepository(db)
	cache := redisdb.NewCatalogCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	catalogService := service.NewCatalogService(bookRepo, borrowRepo, cache, events, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(catalogService)
	userHandler := handler.NewUserHandler(userService)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register, optionalAuth)

	// --- Catalog routes ---
	e.GET("/api/books", bookHandler.List)
	e.POST("/api/books", bookHandler.Create, auth, middleware.RBAC(middleware.Staff...))
	e.PUT("/api/books/:id", bookHandler.Update, auth, middleware.RBAC(middleware.Staff...))
	e.DELETE("/api/books/:id", bookHandler.Delete, auth, middleware.RBAC(middleware.AdminOnly...))

	// --- Loan routes ---
	e.POST("/api/books/:id/borrow", bookHandler.Borrow, auth, middleware.RBAC(middleware.AnyRole...))
	e.POST("/api/books/:id/return", bookHandler.Return, auth, middleware.RBAC(middleware.AnyRole...))
	e.GET("/api/borrowings", bookHandler.ListBorrowings, auth, middleware.RBAC(middleware.AnyRole...))

	// --- User administration routes ---
	e.GET("/api/users", userHandler.List, auth, middleware.RBAC(middleware.Staff...))
	e.GET("/api/users/:id", userHandler.Get, auth, middleware.RBAC(middleware.Staff...))
	e.PUT("/api/users/:id", userHandler.Update, auth, middleware.RBAC(middleware.Staff...))
	e.DELETE("/api/users/:id", userHandler.Delete, auth, middleware.RBAC(middleware.AdminOnly...))

	// --- Operational endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
