// Package response renders the HTTP response envelope shared by every
// solve endpoint.
package response

import (
	"github.com/gin-gonic/gin"

	"github.com/acme-u/timetabler/internal/apperror"
)

// Envelope is the common success/failure response shape.
type Envelope struct {
	Status   string      `json:"status"`
	Score    float64     `json:"score,omitempty"`
	Schedule interface{} `json:"schedule,omitempty"`
	Reason   string      `json:"reason,omitempty"`
	Detail   string      `json:"detail,omitempty"`
}

// OK sends the success envelope for a solved schedule.
func OK(c *gin.Context, score float64, schedule interface{}) {
	c.JSON(200, Envelope{Status: "ok", Score: score, Schedule: schedule})
}

// Error sends the failure envelope for one of the three failure shapes
// (invalid_input / infeasible / solver_error), derived from the error's
// apperror.Reason.
func Error(c *gin.Context, err error) {
	appErr := apperror.FromError(err)
	c.JSON(appErr.Status, Envelope{Status: appErr.Reason, Reason: appErr.Reason, Detail: appErr.Detail})
}
