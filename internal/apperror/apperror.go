// Package apperror normalizes errors from every layer of the service into
// one HTTP-aware shape, the way the transport boundary is meant to: the
// scheduling core stays unaware of status codes, and only this package
// decides what a given failure looks like on the wire.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/acme-u/timetabler/internal/scheduler"
)

// Error is a typed, HTTP-aware error returned by any handler.
type Error struct {
	Status int    `json:"status"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
	Err    error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(status int, reason, detail string) *Error {
	return &Error{Status: status, Reason: reason, Detail: detail}
}

// Wrap attaches reason/detail context to an existing error.
func Wrap(err error, status int, reason, detail string) *Error {
	return &Error{Status: status, Reason: reason, Detail: detail, Err: err}
}

var (
	ErrBadRequest = New(http.StatusBadRequest, "bad_request", "request body could not be decoded")
	ErrInternal   = New(http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
)

// FromError normalizes any error into an *Error. A *scheduler.Error is
// mapped by its stage: invalid_input to 400, infeasible to 422,
// solver_error to 500. Any other error becomes a generic 500.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var schedErr *scheduler.Error
	if errors.As(err, &schedErr) {
		return fromSchedulerError(schedErr)
	}

	return Wrap(err, ErrInternal.Status, ErrInternal.Reason, ErrInternal.Detail)
}

// FromSchedulerError is the direct, non-error-interface entry point the
// HTTP handler uses: *scheduler.Error is returned as a second value by
// the core, not wrapped in the error interface.
func FromSchedulerError(err *scheduler.Error) *Error {
	if err == nil {
		return nil
	}
	return fromSchedulerError(err)
}

func fromSchedulerError(err *scheduler.Error) *Error {
	status := http.StatusInternalServerError
	reason := "solver_error"
	switch err.Stage {
	case scheduler.StageInvalidInput:
		status, reason = http.StatusBadRequest, "invalid_input"
	case scheduler.StageInfeasible:
		status, reason = http.StatusUnprocessableEntity, "infeasible"
	case scheduler.StageSolverError:
		status, reason = http.StatusInternalServerError, "solver_error"
	}

	detail := string(err.Kind)
	if err.CourseID != nil {
		detail = fmt.Sprintf("%s (course %d): %s", err.Kind, *err.CourseID, err.Detail)
	} else {
		detail = fmt.Sprintf("%s: %s", err.Kind, err.Detail)
	}

	return &Error{Status: status, Reason: reason, Detail: detail, Err: err}
}
