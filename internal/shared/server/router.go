package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitsynth-backend/internal/chat"
	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/services/health"
	"fitsynth-backend/internal/shared/config"
	"fitsynth-backend/internal/shared/metrics"
	"fitsynth-backend/internal/shared/server/middleware"
	"fitsynth-backend/internal/shared/server/respond"
)

// RouterDeps holds the handlers mounted under /api/v1.
type RouterDeps struct {
	Config config.Config
	Plans  *plans.Handler
	Chat   *chat.Handler
	Health *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)
	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(false, "", cfg.StoreDriver, nil)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status(c.Request.Context()))
	})

	api.Use(
		middleware.Auth(),
		middleware.RateLimit(rateLimitConfig(cfg)),
	)
	if deps.Plans != nil {
		deps.Plans.RegisterRoutes(api)
	}
	if deps.Chat != nil {
		deps.Chat.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.NotFound(c, "route not found")
	})
	return r
}

// rateLimitConfig gives engine and LLM endpoints the configured budget and
// everything else five times that.
func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	generate := middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.GenerateRateLimitGroup: generate,
			middleware.DefaultRateLimitGroup:  {Rate: generate.Rate * 5, Burst: generate.Burst * 5},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			switch c.FullPath() {
			case "/api/v1/plans", "/api/v1/plans/preview", "/api/v1/chat":
				return middleware.GenerateRateLimitGroup
			}
			return ""
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
