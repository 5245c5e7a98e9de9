package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"libramind-backend/internal/books"
	"libramind-backend/internal/chat"
	"libramind-backend/internal/documents"
	"libramind-backend/internal/shared/config"
	"libramind-backend/internal/shared/metrics"
	"libramind-backend/internal/shared/server/middleware"
	"libramind-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router registers.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	ChatHandler     *chat.Handler
	BookHandler     *books.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	api.Use(
		middleware.Auth(cfg.Env, cfg.SupabaseJWTSecret),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 0.2, Burst: 5},
				"CHAT":   {Rate: 1, Burst: 10},
			},
			GroupFor: groupForRoute,
		}),
	)

	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}
	if deps.BookHandler != nil {
		deps.BookHandler.RegisterRoutes(api)
	}

	return r
}

func groupForRoute(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case c.Request.Method == http.MethodPost && strings.HasPrefix(path, "/api/pdf/upload"):
		return "UPLOAD"
	case c.Request.Method == http.MethodPost && strings.HasPrefix(path, "/api/chat"):
		return "CHAT"
	default:
		return ""
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
