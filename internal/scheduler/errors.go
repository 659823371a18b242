package scheduler

import "fmt"

// Stage identifies which pipeline stage produced an Error, matching the
// three-way taxonomy the transport layer maps to HTTP statuses.
type Stage string

const (
	StageInvalidInput Stage = "invalid_input"
	StageInfeasible   Stage = "infeasible"
	StageSolverError  Stage = "solver_error"
)

// Kind is one specific, distinguishable reason within a Stage.
type Kind string

const (
	KindDuplicateID            Kind = "duplicate_id"
	KindMissingReference       Kind = "missing_reference"
	KindOutOfRange             Kind = "out_of_range"
	KindEmptyCollection        Kind = "empty_collection"
	KindDurationExceedsHorizon Kind = "duration_exceeds_horizon"

	KindCourseWithNoCandidates Kind = "course_with_no_candidates"
	KindProvenBySolver         Kind = "proven_by_solver"

	KindNonOptimalTermination Kind = "non_optimal_termination"
	KindNonBinaryValue        Kind = "non_binary_value"
	KindPostConditionViolated Kind = "post_condition_violated"
	KindBackendFailure        Kind = "backend_failure"
)

// Error is the single error type every scheduler pipeline stage returns.
// The HTTP layer, not this package, decides the status code for each Stage.
type Error struct {
	Stage  Stage
	Kind   Kind
	Detail string

	// CourseID is set when the error pertains to one specific course (e.g.
	// KindCourseWithNoCandidates, KindMissingReference).
	CourseID *int
}

func (e *Error) Error() string {
	if e.CourseID != nil {
		return fmt.Sprintf("%s/%s: course %d: %s", e.Stage, e.Kind, *e.CourseID, e.Detail)
	}
	return fmt.Sprintf("%s/%s: %s", e.Stage, e.Kind, e.Detail)
}

func invalidInput(kind Kind, detail string) *Error {
	return &Error{Stage: StageInvalidInput, Kind: kind, Detail: detail}
}

func invalidInputForCourse(kind Kind, courseID int, detail string) *Error {
	return &Error{Stage: StageInvalidInput, Kind: kind, Detail: detail, CourseID: &courseID}
}

func infeasibleForCourse(kind Kind, courseID int, detail string) *Error {
	return &Error{Stage: StageInfeasible, Kind: kind, Detail: detail, CourseID: &courseID}
}

func infeasible(kind Kind, detail string) *Error {
	return &Error{Stage: StageInfeasible, Kind: kind, Detail: detail}
}

func solverError(kind Kind, detail string) *Error {
	return &Error{Stage: StageSolverError, Kind: kind, Detail: detail}
}

func solverErrorForCourse(kind Kind, courseID int, detail string) *Error {
	return &Error{Stage: StageSolverError, Kind: kind, Detail: detail, CourseID: &courseID}
}
