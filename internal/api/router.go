package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/shipsy/shipsy-api/internal/api/handler"
	"github.com/shipsy/shipsy-api/internal/api/middleware"
	"github.com/shipsy/shipsy-api/internal/core/service"
	"github.com/shipsy/shipsy-api/internal/infrastructure/config"
	"github.com/shipsy/shipsy-api/internal/infrastructure/db/postgres"
	redisstore "github.com/shipsy/shipsy-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowCredentials: true,
		AllowOrigins:     []string{"http://localhost:3000"},
	}))
	e.Use(echoprometheus.NewMiddleware("shipsy"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	shipmentRepo := postgres.NewShipmentRepository(db)
	tokenStore := redisstore.NewTokenStore(rdb)

	// --- Services ---
	tokenService := service.NewTokenService(
		cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL,
	)
	authService := service.NewAuthService(userRepo, tokenService, tokenStore, log)
	customerService := service.NewCustomerService(customerRepo, shipmentRepo, log)
	shipmentService := service.NewShipmentService(shipmentRepo, customerRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, tokenService, cfg.IsProduction())
	customerHandler := handler.NewCustomerHandler(customerService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	authGuard := middleware.Auth(tokenService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authGuard)
	auth.PUT("/profile", authHandler.UpdateProfile, authGuard)
	auth.PUT("/change-password", authHandler.ChangePassword, authGuard)

	// --- Customer routes (all authenticated; no anonymous read path) ---
	customers := e.Group("/api/customers", authGuard)
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/search", customerHandler.Search)
	customers.GET("/stats", customerHandler.Stats)
	customers.POST("/bulk-delete", customerHandler.BulkDelete)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)

	// --- Shipment routes ---
	shipments := e.Group("/api/shipments", authGuard)
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("", shipmentHandler.List)
	shipments.GET("/search", shipmentHandler.Search)
	shipments.GET("/stats", shipmentHandler.Stats)
	shipments.POST("/bulk-delete", shipmentHandler.BulkDelete)
	shipments.GET("/:id", shipmentHandler.Get)
	shipments.PUT("/:id", shipmentHandler.Update)
	shipments.PATCH("/:id/deliver", shipmentHandler.MarkDelivered)
	shipments.DELETE("/:id", shipmentHandler.Delete)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
