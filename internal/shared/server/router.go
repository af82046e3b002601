package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/applications"
	"ats-backend/internal/auth"
	"ats-backend/internal/dashboard"
	"ats-backend/internal/forms"
	"ats-backend/internal/intake"
	"ats-backend/internal/jobs"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/stages"
	"ats-backend/internal/uploads"
)

const applyRateGroup = "APPLY"

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config       config.Config
	Health       *health.Service
	Auth         *auth.Handler
	Jobs         *jobs.Handler
	Forms        *forms.Handler
	Stages       *stages.Handler
	Applications *applications.Handler
	Intake       *intake.Handler
	Uploads      *uploads.Handler
	Dashboard    *dashboard.Handler
	// Limiter is shared across routers in tests; nil builds a fresh one.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		rep := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !rep.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, rep)
	})

	// Candidate-facing routes need no identity.
	apply := api.Group("")
	if cfg.ApplyRatePerMinute > 0 {
		apply.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        map[string]middleware.RateLimitRule{applyRateGroup: middleware.PerMinute(cfg.ApplyRatePerMinute)},
			DefaultGroup: applyRateGroup,
			Limiter:      deps.Limiter,
		}))
	}
	deps.Auth.RegisterRoutes(apply)
	deps.Jobs.RegisterPublicRoutes(api)
	deps.Intake.RegisterRoutes(api, apply)
	deps.Uploads.RegisterPublicRoutes(apply)

	recruiter := api.Group("")
	recruiter.Use(middleware.Auth(cfg.Env))
	registerMeRoutes(recruiter)
	deps.Jobs.RegisterRoutes(recruiter)
	deps.Forms.RegisterRoutes(recruiter)
	deps.Stages.RegisterRoutes(recruiter)
	deps.Applications.RegisterRoutes(recruiter)
	deps.Uploads.RegisterRoutes(recruiter)
	deps.Dashboard.RegisterRoutes(recruiter)
	recruiter.GET("/metrics", metrics.Handler())

	return r
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
