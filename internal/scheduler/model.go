package scheduler

import (
	"fmt"

	"github.com/acme-u/timetabler/internal/milp"
)

// model is a built MILP problem together with the bookkeeping needed to
// decode a solution back into a Schedule.
type model struct {
	problem    milp.Problem
	candidates []Candidate
	varName    map[Candidate]string
}

// buildModel turns a validated instance into an integer linear program.
// Each candidate gets one binary placement variable. Hard constraints
// enforce exactly-one-placement-per-course and mutual exclusion on rooms
// and instructors; soft constraints reward each occupied morning slot and penalize
// back-to-back teaching via the standard AND-linearization of two binary
// variables.
func buildModel(instance *Instance, candidates []Candidate) (*model, *Error) {
	byCourse := candidatesByCourse(candidates)
	for _, c := range instance.Courses {
		if len(byCourse[c.ID]) == 0 {
			return nil, infeasibleForCourse(KindCourseWithNoCandidates, c.ID,
				"no room/start combination satisfies capacity, horizon, and instructor availability")
		}
	}

	problem := milp.NewProblem()
	problem.Maximize()

	varName := make(map[Candidate]string, len(candidates))
	vars := make(map[Candidate]*milp.Variable, len(candidates))

	courseByID := make(map[int]Course, len(instance.Courses))
	for _, c := range instance.Courses {
		courseByID[c.ID] = c
	}

	for _, cand := range candidates {
		name := candidateVarName(cand)
		varName[cand] = name
		duration := courseByID[cand.CourseID].DurationSlots
		v := problem.AddVariable(name).Binary()
		if m := morningOverlap(cand, duration); m > 0 {
			v.SetCoeff(weightMorning * float64(m))
		}
		vars[cand] = v
	}

	// Assignment: exactly one placement chosen per course. Iterate
	// instance.Courses (not the byCourse map) so constraint order - and
	// hence which optimal vertex the simplex lands on when ties exist -
	// depends only on input order, never on map iteration order.
	for _, c := range instance.Courses {
		constraint := problem.AddConstraint()
		for _, cand := range byCourse[c.ID] {
			constraint.AddExpression(1, vars[cand])
		}
		constraint.EqualTo(1)
	}

	roomSlotOccupants := make(map[[2]int][]*milp.Variable)
	instructorSlotOccupants := make(map[[2]int][]*milp.Variable)
	for _, cand := range candidates {
		course := courseByID[cand.CourseID]
		for slot := cand.Start; slot < cand.End(course.DurationSlots); slot++ {
			roomSlotOccupants[[2]int{cand.RoomID, slot}] = append(roomSlotOccupants[[2]int{cand.RoomID, slot}], vars[cand])
			instructorSlotOccupants[[2]int{course.InstructorID, slot}] = append(instructorSlotOccupants[[2]int{course.InstructorID, slot}], vars[cand])
		}
	}

	// Room exclusivity: at most one course occupying a given room at a
	// given slot. Iterate rooms (input order) x slots (ascending) so
	// constraint order is deterministic.
	for _, r := range instance.Rooms {
		for slot := 0; slot < Horizon; slot++ {
			occupants := roomSlotOccupants[[2]int{r.ID, slot}]
			if len(occupants) < 2 {
				continue
			}
			constraint := problem.AddConstraint()
			for _, v := range occupants {
				constraint.AddExpression(1, v)
			}
			constraint.SmallerThanOrEqualTo(1)
		}
	}

	// Instructor exclusivity: at most one course occupying an instructor
	// at a given slot, regardless of room. Instructor IDs are visited in
	// order of first appearance among instance.Courses, the only
	// input-order slice that mentions them.
	for _, instructorID := range instructorIDsByFirstAppearance(instance.Courses) {
		for slot := 0; slot < Horizon; slot++ {
			occupants := instructorSlotOccupants[[2]int{instructorID, slot}]
			if len(occupants) < 2 {
				continue
			}
			constraint := problem.AddConstraint()
			for _, v := range occupants {
				constraint.AddExpression(1, v)
			}
			constraint.SmallerThanOrEqualTo(1)
		}
	}

	addBackToBackPenalty(&problem, instance, candidates, vars, courseByID)

	return &model{problem: problem, candidates: candidates, varName: varName}, nil
}

// addBackToBackPenalty adds one auxiliary variable per (candidate, candidate)
// pair belonging to the same instructor where one's end slot abuts the
// other's start slot, and subtracts weightBackToBack from the objective for
// every such pair that is jointly selected. The pair is jointly selected
// exactly when both placement variables are 1; this is the standard
// linearization of a product of two binaries: y <= x1, y <= x2,
// y >= x1 + x2 - 1. Since the objective being maximized subtracts
// weight*y, the solver always drives y down to max(0, x1+x2-1), so no
// integrality constraint on y is needed.
func addBackToBackPenalty(problem *milp.Problem, instance *Instance, candidates []Candidate, vars map[Candidate]*milp.Variable, courseByID map[int]Course) {
	byInstructor := make(map[int][]Candidate)
	for _, cand := range candidates {
		instructorID := courseByID[cand.CourseID].InstructorID
		byInstructor[instructorID] = append(byInstructor[instructorID], cand)
	}

	pairIndex := 0
	for _, instructorID := range instructorIDsByFirstAppearance(instance.Courses) {
		group := byInstructor[instructorID]
		for _, a := range group {
			for _, b := range group {
				if a.CourseID == b.CourseID {
					continue
				}
				durationA := courseByID[a.CourseID].DurationSlots
				if a.End(durationA) != b.Start {
					continue
				}

				x1, x2 := vars[a], vars[b]
				aux := problem.AddVariable(fmt.Sprintf("btb_%d", pairIndex))
				aux.SetCoeff(-weightBackToBack).UpperBound(1).LowerBound(0)
				pairIndex++

				problem.AddConstraint().AddExpression(1, aux).AddExpression(-1, x1).SmallerThanOrEqualTo(0)
				problem.AddConstraint().AddExpression(1, aux).AddExpression(-1, x2).SmallerThanOrEqualTo(0)

				// y >= x1 + x2 - 1  <=>  -y + x1 + x2 <= 1
				problem.AddConstraint().AddExpression(-1, aux).AddExpression(1, x1).AddExpression(1, x2).SmallerThanOrEqualTo(1)
			}
		}
	}
}

// instructorIDsByFirstAppearance returns each distinct instructor_id in the
// order its first course appears, giving a stable iteration order without
// depending on Go's randomized map iteration.
func instructorIDsByFirstAppearance(courses []Course) []int {
	seen := make(map[int]bool, len(courses))
	var ids []int
	for _, c := range courses {
		if !seen[c.InstructorID] {
			seen[c.InstructorID] = true
			ids = append(ids, c.InstructorID)
		}
	}
	return ids
}

func candidateVarName(c Candidate) string {
	return fmt.Sprintf("x_c%d_r%d_s%d", c.CourseID, c.RoomID, c.Start)
}

// morningOverlap returns m(v): the number of a candidate's occupied slots
// that fall within the morning half of the horizon.
func morningOverlap(cand Candidate, duration int) int {
	count := 0
	end := cand.End(duration)
	for slot := cand.Start; slot < end; slot++ {
		if slot < MorningEnd {
			count++
		}
	}
	return count
}
