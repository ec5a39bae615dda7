package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "counsel-backend/internal/auth"
	"counsel-backend/internal/resumes"
	"counsel-backend/internal/sessions"
	"counsel-backend/internal/shared/config"
	"counsel-backend/internal/shared/metrics"
	"counsel-backend/internal/shared/server/middleware"
	"counsel-backend/internal/shared/server/respond"
	"counsel-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	SessionsHandler *sessions.Handler
	ResumesHandler  *resumes.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Registered before the middleware chain so scrapes skip auth.
	r.GET("/metrics", metrics.Handler())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(rateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}
	if deps.SessionsHandler != nil {
		deps.SessionsHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimits throttles the expensive endpoints per principal: report
// generation burns LLM quota, uploads burn storage and extraction.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"GENERATE": {Rate: 0.2, Burst: 3},
			"UPLOAD":   {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			path := c.Request.URL.Path
			switch {
			case strings.HasSuffix(path, "/analysis"):
				return "GENERATE"
			case strings.HasSuffix(path, "/resumes/upload"):
				return "UPLOAD"
			default:
				return ""
			}
		},
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
