package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tanit/user-management/internal/api/handler"
	"github.com/tanit/user-management/internal/api/middleware"
	"github.com/tanit/user-management/internal/core/ports"
	"github.com/tanit/user-management/internal/core/service"

	_ "github.com/tanit/user-management/docs"
)

// Config carries the router's own settings; infrastructure dependencies come
// in as ports so tests can wire in-memory fakes.
type Config struct {
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	// Metrics receives the HTTP metrics collectors. Nil selects the
	// Prometheus default registry; tests pass a fresh registry so every
	// NewRouter call can register its collectors without colliding.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg Config, users ports.UserRepository, sessions ports.SessionSink, probes []handler.Probe, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if cfg.Metrics != nil {
		registerer, gatherer = cfg.Metrics, cfg.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "usermgmt",
		Registerer: registerer,
	}))

	// --- Authorization gate ---
	// Ordered interceptors: Authenticate attaches the principal (never
	// rejecting), RequireIdentity enforces it for everything off the
	// allow-list.
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	allow := middleware.NewAllowList(
		"/signup",
		"/login",
		"/health",
		"/health/ready",
		"/metrics",
		"/swagger*",
	)
	e.Use(middleware.Authenticate(tokens, allow))
	e.Use(middleware.RequireIdentity(allow))

	// --- Routes ---
	authHandler := handler.NewAuthHandler(service.NewAuthService(users), tokens, users, sessions)
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/profile", authHandler.Profile)

	healthHandler := handler.NewHealthHandler(probes...)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
