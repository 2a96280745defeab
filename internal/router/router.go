package router // package router builds the echo instance and registers the API routes

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-chat-booking/internal/chat"
	"github.com/iliyamo/movie-chat-booking/internal/config"
	"github.com/iliyamo/movie-chat-booking/internal/handler"
	"github.com/iliyamo/movie-chat-booking/internal/middleware"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
	"github.com/iliyamo/movie-chat-booking/internal/service"
)

// APIPrefix is where every API route lives.
const APIPrefix = "/api"

// Deps are the collaborators the routes need.  Redis may be nil, in which
// case caching and rate limiting are off.
type Deps struct {
	Cfg       config.Config
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Store     *repository.Store
	Bookings  *service.BookingService
	Redis     *redis.Client
}

// New returns an echo instance with logging, recovery and every route
// registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(d.Cfg.Env))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				c.Logger().Errorf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			c.Logger().Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	var cacheStore middleware.CacheStore
	var scripter redis.Scripter
	if d.Redis != nil {
		cacheStore, scripter = d.Redis, d.Redis
	}
	cache := middleware.ResponseCache(d.Cache, cacheStore)
	limit := middleware.RateLimit(d.RateLimit, scripter)

	RegisterRoutes(e)
	api := e.Group(APIPrefix, middleware.Identity(d.Cfg.JWTSecret))
	RegisterCatalog(api, handler.NewCatalogHandler(d.Store), cache)
	RegisterBookings(api, handler.NewBookingHandler(d.Store, d.Bookings), limit)
	RegisterChat(api, handler.NewChatHandler(chat.NewRouter(d.Store)), limit)
	RegisterAuth(api, handler.NewAuthHandler(d.Cfg, d.Store), limit)
	return e
}

func logLevel(env string) log.Lvl {
	if env == "dev" {
		return log.DEBUG
	}
	return log.INFO
}

// RegisterRoutes registers routes that live outside the API prefix.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterChat registers POST /chat behind the rate limiter.
func RegisterChat(g *echo.Group, h *handler.ChatHandler, limit echo.MiddlewareFunc) {
	g.POST("/chat", h.Post, limit)
}

// RegisterAuth registers the optional account endpoints.  Register and
// login are rate limited to slow down password guessing.
func RegisterAuth(g *echo.Group, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	auth := g.Group("/auth")
	auth.POST("/register", a.Register, limit)
	auth.POST("/login", a.Login, limit)
	auth.GET("/me", a.Me)
}
