package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/aCoruja/TechSecurityWebsite/docs"
	"github.com/aCoruja/TechSecurityWebsite/internal/api/handler"
	"github.com/aCoruja/TechSecurityWebsite/internal/api/middleware"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

// Deps carries everything the HTTP surface needs. Services and stores are
// built by the caller and owned for the lifetime of the router.
type Deps struct {
	Auth     ports.AuthService
	Tokens   ports.TokenService
	Catalog  ports.CatalogService
	Carts    ports.CartService
	Checkout ports.CheckoutService

	// Readiness lists the external stores pinged by /health/ready.
	Readiness []handler.DependencyCheck

	// StaticDir is served under / when non-empty.
	StaticDir string

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// Each router gets its own registry so request metrics never collide
	// across instances; custom metrics stay on the default registry.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "shop",
		Subsystem:  "http",
		Registerer: reg,
	}))

	authHandler := handler.NewAuthHandler(d.Auth, d.Tokens)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	cartHandler := handler.NewCartHandler(d.Carts)
	checkoutHandler := handler.NewCheckoutHandler(d.Checkout)
	authMiddleware := middleware.Auth(d.Tokens)

	// --- Public routes ---
	e.GET("/products", catalogHandler.List)
	e.POST("/auth", authHandler.AuthenticateClient)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/validate-token", authHandler.ValidateToken)

	// --- Protected routes ---
	cart := e.Group("/cart", authMiddleware)
	cart.GET("", cartHandler.Get)
	cart.POST("", cartHandler.Add)
	cart.PUT("", cartHandler.Replace)
	cart.DELETE("", cartHandler.Clear)

	e.POST("/checkout", checkoutHandler.Checkout, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if d.StaticDir != "" {
		e.Static("/", d.StaticDir)
	}

	return e
}
