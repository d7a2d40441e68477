package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/romasdental/clinic-portal/internal/handler/prometheus"
	"github.com/romasdental/clinic-portal/internal/middleware"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
	"github.com/romasdental/clinic-portal/pkg/httputil"
)

const APIPrefix = "/api/v1"

// PublicHandler serves routes anyone may call.
type PublicHandler interface {
	RegisterPublicRoutes(r *gin.RouterGroup)
}

// AdminHandler serves routes behind an admin session.
type AdminHandler interface {
	RegisterAdminRoutes(r *gin.RouterGroup)
}

// Resource has both public reads and admin writes.
type Resource interface {
	PublicHandler
	AdminHandler
}

// Handlers is everything the router mounts. Booking and Auth take the
// submission limiter on their public routes.
type Handlers struct {
	Booking interface {
		AdminHandler
		RegisterPublicRoutes(r *gin.RouterGroup, mw ...gin.HandlerFunc)
	}
	Auth interface {
		AdminHandler
		RegisterPublicRoutes(r *gin.RouterGroup, mw ...gin.HandlerFunc)
	}
	Resources []Resource
	Dashboard interface {
		RegisterRoutes(r *gin.RouterGroup)
	}
	Health interface {
		RegisterRoutes(r gin.IRoutes)
	}
}

type Config struct {
	Mode           string
	ServiceName    string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	MetricsPath    string
	CORS           middleware.CORSConfig
	// RateLimiter guards booking submission and login. Nil disables it.
	RateLimiter *middleware.RateLimiter
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(cfg Config, sessions middleware.SessionValidator, metrics *prometheus.Handler, h Handlers) *Router {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		otelgin.Middleware(cfg.ServiceName),
		middleware.CORS(cfg.CORS),
		middleware.SecurityHeaders(),
	)
	if metrics != nil {
		engine.Use(metrics.Middleware())
	}
	engine.Use(middleware.ErrorHandler())

	engine.NoRoute(func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.NotFound("route", nil))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httputil.Response{Message: "method not allowed"})
	})

	if h.Health != nil {
		h.Health.RegisterRoutes(engine)
	}
	if metrics != nil && cfg.MetricsPath != "" {
		engine.GET(cfg.MetricsPath, metrics.Handler())
	}

	api := engine.Group(APIPrefix)
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.MaxBodyBytes > 0 {
		api.Use(middleware.SizeLimit(cfg.MaxBodyBytes))
	}

	var limit []gin.HandlerFunc
	if cfg.RateLimiter != nil {
		limit = append(limit, cfg.RateLimiter.RateLimit())
	}

	admin := api.Group("/admin", middleware.RequireAdmin(sessions), middleware.NoStore())

	if h.Booking != nil {
		h.Booking.RegisterPublicRoutes(api, limit...)
		h.Booking.RegisterAdminRoutes(admin)
	}
	if h.Auth != nil {
		h.Auth.RegisterPublicRoutes(api, limit...)
		h.Auth.RegisterAdminRoutes(admin)
	}
	for _, res := range h.Resources {
		res.RegisterPublicRoutes(api)
		res.RegisterAdminRoutes(admin)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(admin)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}
