package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/prostore/catalog-api/docs"
	"github.com/prostore/catalog-api/internal/api/handler"
	"github.com/prostore/catalog-api/internal/api/middleware"
	"github.com/prostore/catalog-api/internal/core/ports"
)

// Deps carries everything the router needs to register routes.
type Deps struct {
	AuthService    ports.AuthService
	ProductService ports.ProductService
	TokenService   ports.TokenService
	UserRepo       ports.UserRepository
	Mongo          *mongo.Database
	Redis          *redis.Client
	ClientURL      string
	Logger         zerolog.Logger
	// Metrics is the Prometheus registry for HTTP metrics. Defaults to
	// the global registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	metricsConfig := echoprometheus.MiddlewareConfig{Subsystem: "catalog"}
	if deps.Metrics != nil {
		metricsConfig.Registerer = deps.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig))
	if deps.ClientURL != "" {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     []string{deps.ClientURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowCredentials: true,
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	productHandler := handler.NewProductHandler(deps.ProductService)
	authRequired := middleware.Auth(deps.TokenService, deps.UserRepo)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// --- Product routes ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create, authRequired)
	products.PUT("/:id", productHandler.Update, authRequired)
	products.DELETE("/:id", productHandler.Delete, authRequired)

	// --- Observability ---
	if deps.Metrics != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Metrics}))
	} else {
		e.GET("/metrics", echoprometheus.NewHandler())
	}
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
