package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/buzzhire/recruit-mailer/internal/api/handler"
	"github.com/buzzhire/recruit-mailer/internal/api/middleware"
	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
)

// Deps are the services the router exposes.
type Deps struct {
	Auth       ports.AuthService
	Workspace  ports.WorkspaceService
	Dispatcher ports.MailDispatcher
	Mail       ports.MailAuthorizer
	Checkers   []handler.Checker
	JWTSecret  string
	Logger     zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "recruit_mailer",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	authHandler := handler.NewAuthHandler(d.Auth)
	candidateHandler := handler.NewCandidateHandler(d.Workspace)
	selectionHandler := handler.NewSelectionHandler(d.Workspace)
	emailHandler := handler.NewEmailHandler(d.Workspace, d.Dispatcher)
	mailAuthHandler := handler.NewMailAuthHandler(d.Mail)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/mail/oauth/callback", mailAuthHandler.Callback)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(d.Checkers...).Readiness)

	// --- Operator API ---
	v1 := e.Group("/v1", middleware.Auth(d.JWTSecret), middleware.RequireRole(domain.RoleOperator))
	v1.GET("/me", authHandler.Me)

	v1.GET("/candidates", candidateHandler.List)
	v1.POST("/candidates", candidateHandler.Create)
	v1.GET("/candidates/stats", candidateHandler.Stats)
	v1.GET("/candidates/:id", candidateHandler.Get)
	v1.PUT("/candidates/:id", candidateHandler.Update)
	v1.DELETE("/candidates/:id", candidateHandler.Delete)

	v1.GET("/candidates/:id/selections", selectionHandler.Get)
	v1.PUT("/candidates/:id/selections", selectionHandler.Put)
	v1.POST("/candidates/:id/selections/toggle", selectionHandler.Toggle)
	v1.POST("/candidates/:id/selections/bulk", selectionHandler.Bulk)
	v1.POST("/candidates/:id/selections/reorder", selectionHandler.Reorder)

	v1.GET("/candidates/:id/emails/:recipient", emailHandler.Preview)
	v1.POST("/candidates/:id/emails/:recipient/send", emailHandler.Send)
	v1.POST("/candidates/:id/emails/:recipient/copy", emailHandler.Copy)

	v1.GET("/mail/auth", mailAuthHandler.Status)
	v1.POST("/mail/auth", mailAuthHandler.Start)
	v1.GET("/mail/auth/wait", mailAuthHandler.Wait)
	v1.DELETE("/mail/auth", mailAuthHandler.Disconnect)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
