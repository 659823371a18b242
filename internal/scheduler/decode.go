package scheduler

import (
	"math"
	"sort"

	"github.com/acme-u/timetabler/internal/milp"
)

const binaryTolerance = 1e-6

// decode reads the oracle's solved variable assignment back into a
// Schedule: exactly one candidate per course, stably ordered by course ID.
// It cross-checks the oracle's reported objective against the schedule's
// own recomputed score, re-verifies each placement's room capacity,
// horizon bounds, and instructor availability, and runs the same
// room/instructor conflict check Validate uses, so a solver or modeling
// bug surfaces as an error rather than a silently wrong schedule.
func decode(instance *Instance, m *model, soln *milp.Solution) (*Schedule, *Error) {
	byCourse := candidatesByCourse(m.candidates)

	entries := make([]ScheduleEntry, 0, len(instance.Courses))
	courseByID := make(map[int]Course, len(instance.Courses))
	for _, c := range instance.Courses {
		courseByID[c.ID] = c
	}

	for _, c := range instance.Courses {
		var chosen *Candidate
		for _, cand := range byCourse[c.ID] {
			name := m.varName[cand]
			val, err := soln.GetValueFor(name)
			if err != nil {
				return nil, solverError(KindBackendFailure, err.Error())
			}
			if !isBinary(val) {
				return nil, solverError(KindNonBinaryValue, "placement variable took a non-binary value")
			}
			if val > 0.5 {
				if chosen != nil {
					return nil, solverError(KindPostConditionViolated, "course was assigned more than one placement")
				}
				cand := cand
				chosen = &cand
			}
		}
		if chosen == nil {
			return nil, solverError(KindPostConditionViolated, "course was assigned no placement")
		}

		entries = append(entries, ScheduleEntry{
			CourseID:       c.ID,
			RoomID:         chosen.RoomID,
			StartSlot:      chosen.Start,
			EndSlotExclude: chosen.End(c.DurationSlots),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].CourseID < entries[j].CourseID })
	schedule := &Schedule{Entries: entries, Score: objectiveOf(entries, courseByID)}

	if math.Abs(schedule.Score-soln.Objective) > 1e-4 {
		return nil, solverError(KindPostConditionViolated, "recomputed objective does not match the oracle's reported objective")
	}

	roomCapacity := make(map[int]int, len(instance.Rooms))
	for _, r := range instance.Rooms {
		roomCapacity[r.ID] = r.Capacity
	}
	for _, e := range schedule.Entries {
		course := courseByID[e.CourseID]
		if roomCapacity[e.RoomID] < course.RequiredCapacity || e.StartSlot < 0 || e.EndSlotExclude > Horizon {
			return nil, solverErrorForCourse(KindPostConditionViolated, e.CourseID, "placement violates room capacity or the planning horizon")
		}
		for slot := e.StartSlot; slot < e.EndSlotExclude; slot++ {
			if instance.Instructors[course.InstructorID].Unavailable[slot] {
				return nil, solverErrorForCourse(KindPostConditionViolated, e.CourseID, "placement occupies a slot the instructor is unavailable for")
			}
		}
	}

	if err := checkNoConflicts(schedule.Entries, courseByID); err != nil {
		return nil, err
	}

	return schedule, nil
}

func isBinary(v float64) bool {
	return math.Abs(v) < binaryTolerance || math.Abs(v-1) < binaryTolerance
}

func objectiveOf(entries []ScheduleEntry, courseByID map[int]Course) float64 {
	score := 0.0
	for _, e := range entries {
		m := 0
		for slot := e.StartSlot; slot < e.EndSlotExclude; slot++ {
			if slot < MorningEnd {
				m++
			}
		}
		score += weightMorning * float64(m)
	}
	score -= backToBackPenalty(entries, courseByID)
	return score
}

func backToBackPenalty(entries []ScheduleEntry, courseByID map[int]Course) float64 {
	byInstructorEnd := make(map[[2]int]bool)
	for _, e := range entries {
		instructorID := courseByID[e.CourseID].InstructorID
		byInstructorEnd[[2]int{instructorID, e.EndSlotExclude}] = true
	}
	penalty := 0.0
	for _, e := range entries {
		instructorID := courseByID[e.CourseID].InstructorID
		if byInstructorEnd[[2]int{instructorID, e.StartSlot}] {
			penalty += weightBackToBack
		}
	}
	return penalty
}
