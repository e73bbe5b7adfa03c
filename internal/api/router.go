package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/relaycrm/crm-system/docs"
	"github.com/relaycrm/crm-system/internal/api/handler"
	"github.com/relaycrm/crm-system/internal/api/middleware"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log       zerolog.Logger
	JWTSecret string
	Denylist  ports.TokenDenylist

	Auth      ports.AuthService
	Customers ports.CustomerService
	Imports   ports.ImportService
	Reports   ports.ReportService
	Users     ports.UserService
	Dashboard ports.DashboardService

	HealthChecks map[string]handler.Checker

	MediaRoot     string
	MediaURL      string
	MaxUploadSize string

	// Registry receives the HTTP metrics. Defaults to the global registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if d.MaxUploadSize != "" {
		e.Use(echomiddleware.BodyLimit(d.MaxUploadSize))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "crm",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Public routes ---
	healthHandler := handler.NewHealthHandler(d.HealthChecks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.MediaURL != "" && d.MediaRoot != "" {
		e.Static(d.MediaURL, d.MediaRoot)
	}

	authMiddleware := middleware.Auth(d.JWTSecret, d.Denylist)

	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	dashboardHandler := handler.NewDashboardHandler(d.Dashboard, d.MediaURL)
	v1.GET("/dashboard", dashboardHandler.Summary)

	customerHandler := handler.NewCustomerHandler(d.Customers, d.MediaURL)
	importHandler := handler.NewImportHandler(d.Imports, d.Reports, d.Log)
	customers := v1.Group("/customers")
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.POST("/import", importHandler.Import)
	customers.GET("/import/sample", importHandler.Sample)
	customers.GET("/import/runs", importHandler.Runs)
	customers.GET("/export/pdf", importHandler.ExportPDF)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.PUT("/:id/image", customerHandler.UploadImage)

	userHandler := handler.NewUserHandler(d.Users, d.MediaURL)
	users := v1.Group("/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)

	v1.GET("/profile", userHandler.GetProfile)
	v1.PUT("/profile", userHandler.UpdateProfile)
	v1.PUT("/profile/image", userHandler.UploadProfileImage)

	return e
}

// requestLogger forwards echo's access log values into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
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
