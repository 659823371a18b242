package scheduler

import (
	"context"
	"errors"

	"github.com/acme-u/timetabler/internal/milp"
)

// Options controls a single Solve invocation.
type Options struct {
	// Workers bounds how many branch-and-bound workers the oracle may
	// use. Zero selects the oracle's default.
	Workers int
	// Instrumentation, if set, observes the oracle's branch-and-bound
	// search as it runs.
	Instrumentation milp.BnbMiddleware
}

// Solve validates raw, builds the integer linear program, hands it to the
// MILP oracle, and decodes the result into a Schedule. Any failure at any
// stage is reported as an *Error tagged with the stage it occurred in.
func Solve(ctx context.Context, raw ProblemInstance, opts Options) (*Schedule, *Error) {
	instance, verr := validateInstance(raw)
	if verr != nil {
		return nil, verr
	}

	candidates := enumerateCandidates(instance)

	m, merr := buildModel(instance, candidates)
	if merr != nil {
		return nil, merr
	}

	if opts.Workers > 0 {
		m.problem.SetWorkers(opts.Workers)
	}
	if opts.Instrumentation != nil {
		m.problem.SetInstrumentation(opts.Instrumentation)
	}

	soln, err := m.problem.Solve(ctx)
	if err != nil {
		if errors.Is(err, milp.ErrNoIntegerFeasibleSolution) {
			return nil, infeasible(KindProvenBySolver, "no combination of candidate placements satisfies every hard constraint")
		}
		if ctx.Err() != nil {
			return nil, solverError(KindBackendFailure, ctx.Err().Error())
		}
		return nil, solverError(KindNonOptimalTermination, err.Error())
	}

	return decode(instance, m, soln)
}
