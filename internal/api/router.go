package api

import (
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/paydesk/payment-service/internal/api/handler"
	"github.com/paydesk/payment-service/internal/api/middleware"
	"github.com/paydesk/payment-service/internal/core/ports"
	"github.com/paydesk/payment-service/internal/infrastructure/http/handlers"
)

const (
	LoginPath   = "/auth/login"
	PaymentPath = "/v1/payment"
)

// Dependencies are the services the router exposes over HTTP.
type Dependencies struct {
	Auth          ports.AuthService
	Authenticator ports.Authenticator
	Payments      ports.PaymentService
	HealthChecks  []handlers.Check

	// PublicPaths are skipped by the authentication gate in addition to LoginPath.
	PublicPaths []string
	// PaymentAuthorities, when non-empty, restricts the payment routes to
	// principals holding one of them.
	PaymentAuthorities []string

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	exempt := append([]string{LoginPath}, deps.PublicPaths...)
	policy := middleware.Policy{
		Public:    append([]string{"/health", "/health/ready", "/metrics"}, exempt...),
		Protected: []string{PaymentPath},
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(httpMetrics())
	e.Use(middleware.Authenticate(deps.Authenticator, exempt...))
	e.Use(middleware.Authorize(policy))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST(LoginPath, authHandler.Login)

	// --- Payment routes (principal required) ---
	paymentHandler := handler.NewPaymentHandler(deps.Payments)
	pay := e.Group(PaymentPath)
	if len(deps.PaymentAuthorities) > 0 {
		pay.Use(middleware.RequireAuthority(deps.PaymentAuthorities...))
	}
	pay.POST("/pay", paymentHandler.Pay)
	pay.GET("/transactions", paymentHandler.Transactions)
	pay.GET("/methods", paymentHandler.Methods)
	pay.GET("/stats", paymentHandler.Stats)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// httpMetrics registers the request collectors with the default registry
// once per process; every router built afterwards shares them.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem: "payment_http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	})
})

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
