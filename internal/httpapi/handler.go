package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acme-u/timetabler/internal/apperror"
	"github.com/acme-u/timetabler/internal/config"
	"github.com/acme-u/timetabler/internal/response"
	"github.com/acme-u/timetabler/internal/scheduler"
)

// Handler wires the scheduling core to HTTP. It holds no per-request
// state: every solve allocates and frees its own model.
type Handler struct {
	solverCfg config.SolverConfig
}

func NewHandler(solverCfg config.SolverConfig) *Handler {
	return &Handler{solverCfg: solverCfg}
}

// Solve handles POST <APIPrefix>/schedule: decode a problem instance, run
// it through the scheduling core, and render the result.
func (h *Handler) Solve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrBadRequest)
		return
	}

	ctx := c.Request.Context()
	if h.solverCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.solverCfg.Timeout)
		defer cancel()
	}

	schedule, schedErr := scheduler.Solve(ctx, req.toInstance(), scheduler.Options{Workers: h.solverCfg.Workers})
	if schedErr != nil {
		c.Set("solve_stage", schedErr.Stage)
		response.Error(c, apperror.FromSchedulerError(schedErr))
		return
	}

	c.Set("solve_stage", "ok")
	response.OK(c, schedule.Score, entriesToDTO(schedule.Entries))
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
