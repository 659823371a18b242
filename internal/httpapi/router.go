package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acme-u/timetabler/internal/config"
	"github.com/acme-u/timetabler/internal/httpapi/cors"
	"github.com/acme-u/timetabler/internal/httpapi/requestid"
	"github.com/acme-u/timetabler/internal/logging"
)

// NewRouter assembles the gin engine: request ID, structured logging, and
// CORS middleware, followed by the solve and health routes.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logging.GinMiddleware(logger))
	r.Use(cors.New(cfg.CORS.AllowedOrigins))

	h := NewHandler(cfg.Solver)

	r.GET("/healthz", h.Health)

	api := r.Group(cfg.APIPrefix)
	api.POST("/schedule", h.Solve)

	return r
}
