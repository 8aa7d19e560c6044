package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/smarotkar/trek-booking/internal/config"
	"github.com/smarotkar/trek-booking/internal/handler"
	"github.com/smarotkar/trek-booking/internal/middleware"
	"github.com/smarotkar/trek-booking/internal/store"
)

// Handlers collects every handler the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Event        *handler.EventHandler
	EventRequest *handler.EventRequestHandler
	Guide        *handler.GuideHandler
	GuideRequest *handler.GuideRequestHandler
	About        *handler.AboutHandler
	Upload       *handler.UploadHandler
}

// Register wires all routes under /api.  Three tiers of access exist:
// public routes, authenticated routes behind JWTAuth, and admin routes
// behind JWTAuth plus the strict admin role gate.  The rate limiter
// covers the whole surface but is attached per group, behind JWTAuth
// where one exists: the key strategy can only see a user id after the
// token has been parsed, so the public group is limited per IP and the
// authenticated groups per configured strategy.  The response cache
// covers only the public browse endpoints.
func Register(e *echo.Echo, cfg config.Config, st *store.Store, rdb *redis.Client, h Handlers) {
	rlCfg := config.LoadRateLimitConfig()
	ipCfg := rlCfg
	ipCfg.KeyStrategy = "ip" // no identity exists before JWTAuth
	publicLimit := middleware.RateLimit(ipCfg, rdb)
	authedLimit := middleware.RateLimit(rlCfg, rdb)

	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	// Uploaded images are served directly from disk.
	e.Static("/uploads", cfg.UploadDir)

	// Public surface.
	pub := e.Group("/api", publicLimit)
	pub.GET("/health", handler.Health(st))
	pub.POST("/register", h.Auth.Register)
	pub.POST("/login", h.Auth.Login)
	pub.GET("/events", h.Event.List, cache)
	pub.GET("/events/:id", h.Event.Get, cache)
	pub.GET("/about", h.About.Get, cache)
	pub.GET("/guides", h.Guide.List, cache)
	pub.GET("/guides/:id", h.GuideRequest.PublicProfile)

	// Any authenticated user.
	auth := e.Group("/api", middleware.JWTAuth(cfg.JWTSecret), authedLimit)
	auth.GET("/profile", h.Auth.GetProfile)
	auth.PUT("/profile", h.Auth.UpdateProfile)
	auth.POST("/events", h.Event.Create) // role check inside: guide or admin
	auth.POST("/event-requests", h.EventRequest.Submit)
	auth.GET("/event-requests", h.EventRequest.ListMine)
	auth.POST("/guiderequest", h.GuideRequest.Request)
	auth.POST("/upload", h.Upload.Image)
	auth.POST("/upload-profile-photo", h.Upload.ProfilePhoto)

	// Admin only.
	admin := e.Group("/api", middleware.JWTAuth(cfg.JWTSecret), authedLimit, middleware.RequireAdmin())
	admin.GET("/admin/users", h.Auth.ListUsers)
	admin.GET("/admin/event-requests", h.EventRequest.ListAll)
	admin.PUT("/admin/event-requests/:id", h.EventRequest.Decide)
	admin.PUT("/events/:id/approve", h.Event.Approve)
	admin.PUT("/events/:id/reject", h.Event.Reject)
	admin.POST("/guides", h.Guide.Create)
	admin.PUT("/guides/:id", h.Guide.Update)
	admin.DELETE("/guides/:id", h.Guide.Delete)
	admin.PUT("/approveguide/:id", h.GuideRequest.Decide)
	admin.GET("/guiderequests", h.GuideRequest.List)
	admin.PUT("/about", h.About.Update)
}
