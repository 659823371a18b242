package scheduler

import "math"

// Validate re-checks a Schedule against a raw problem instance from
// scratch: every course placed exactly once, every room big enough for
// its course, every slot within the horizon, no two entries sharing a
// room or an instructor at an overlapping slot, and the schedule's Score
// matching what the placements actually earn. It does not require the
// schedule to have come from Solve - it is safe to call on a schedule
// from any source, which is what makes it useful as a standalone
// conformance check.
func Validate(schedule *Schedule, raw ProblemInstance) *Error {
	instance, verr := validateInstance(raw)
	if verr != nil {
		return verr
	}

	courseByID := make(map[int]Course, len(instance.Courses))
	for _, c := range instance.Courses {
		courseByID[c.ID] = c
	}
	roomByID := make(map[int]Room, len(instance.Rooms))
	for _, r := range instance.Rooms {
		roomByID[r.ID] = r
	}

	seenCourse := make(map[int]bool, len(schedule.Entries))
	for _, e := range schedule.Entries {
		course, ok := courseByID[e.CourseID]
		if !ok {
			return solverErrorForCourse(KindPostConditionViolated, e.CourseID, "schedule entry references an unknown course")
		}
		if seenCourse[e.CourseID] {
			return solverErrorForCourse(KindPostConditionViolated, e.CourseID, "course appears more than once in the schedule")
		}
		seenCourse[e.CourseID] = true

		room, ok := roomByID[e.RoomID]
		if !ok {
			return solverErrorForCourse(KindPostConditionViolated, e.CourseID, "schedule entry references an unknown room")
		}
		if room.Capacity < course.RequiredCapacity {
			return solverErrorForCourse(KindPostConditionViolated, e.CourseID, "assigned room is smaller than the course requires")
		}
		if e.EndSlotExclude-e.StartSlot != course.DurationSlots {
			return solverErrorForCourse(KindPostConditionViolated, e.CourseID, "entry duration does not match the course's duration_slots")
		}
		if e.StartSlot < 0 || e.EndSlotExclude > Horizon {
			return solverErrorForCourse(KindPostConditionViolated, e.CourseID, "entry falls outside the planning horizon")
		}
		if instructor, ok := instance.Instructors[course.InstructorID]; ok {
			for slot := e.StartSlot; slot < e.EndSlotExclude; slot++ {
				if instructor.Unavailable[slot] {
					return solverErrorForCourse(KindPostConditionViolated, e.CourseID, "entry occupies a slot the instructor is unavailable for")
				}
			}
		}
	}
	for _, c := range instance.Courses {
		if !seenCourse[c.ID] {
			return solverErrorForCourse(KindPostConditionViolated, c.ID, "course has no entry in the schedule")
		}
	}

	if err := checkNoConflicts(schedule.Entries, courseByID); err != nil {
		return err
	}

	wantScore := objectiveOf(schedule.Entries, courseByID)
	if math.Abs(wantScore-schedule.Score) > 1e-9 {
		return solverError(KindPostConditionViolated, "schedule's reported score does not match the placements it contains")
	}

	return nil
}

// checkNoConflicts verifies, from a set of schedule entries alone, that no
// two entries share a room or an instructor at an overlapping slot.
func checkNoConflicts(entries []ScheduleEntry, courseByID map[int]Course) *Error {
	roomOccupied := make(map[[2]int]int)
	instructorOccupied := make(map[[2]int]int)

	for _, e := range entries {
		instructorID := courseByID[e.CourseID].InstructorID
		for slot := e.StartSlot; slot < e.EndSlotExclude; slot++ {
			roomKey := [2]int{e.RoomID, slot}
			if owner, ok := roomOccupied[roomKey]; ok && owner != e.CourseID {
				return solverError(KindPostConditionViolated, "two courses were assigned the same room at an overlapping slot")
			}
			roomOccupied[roomKey] = e.CourseID

			instrKey := [2]int{instructorID, slot}
			if owner, ok := instructorOccupied[instrKey]; ok && owner != e.CourseID {
				return solverError(KindPostConditionViolated, "one instructor was assigned two overlapping courses")
			}
			instructorOccupied[instrKey] = e.CourseID
		}
	}
	return nil
}
