package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codereview-backend/internal/llm"
	"codereview-backend/internal/reviews"
	"codereview-backend/internal/shared/config"
	"codereview-backend/internal/shared/metrics"
	"codereview-backend/internal/shared/server/middleware"
	"codereview-backend/internal/shared/server/respond"
	"codereview-backend/internal/users"
)

// RouterDeps carries everything needed to build the HTTP surface.
type RouterDeps struct {
	Config        config.Config
	ReviewHandler *reviews.Handler
	UserHandler   *users.Handler
	LLM           llm.Client
	Verifier      middleware.TokenVerifier
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", healthHandler(deps.LLM))
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.Auth(deps.Verifier),
		middleware.RateLimit(rateLimits()),
	)
	deps.ReviewHandler.RegisterRoutes(api)
	deps.UserHandler.RegisterRoutes(api)

	return r
}

func healthHandler(client llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		llmOK := false
		if client != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			llmOK = client.HealthCheck(ctx)
		}
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "llm": llmOK})
	}
}

// rateLimits keeps submissions modest while allowing status polling at
// the reference cadence of one request every few seconds.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/reviews" {
				return "SUBMIT"
			}
			if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/reviews/:id" {
				return "POLLING"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 5, Burst: 20},
			"SUBMIT":  {Rate: 0.5, Burst: 3},
			"POLLING": {Rate: 2, Burst: 10},
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
