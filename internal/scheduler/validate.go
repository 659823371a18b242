package scheduler

// NormalizedInstructor carries per-slot availability as a fixed-size array
// for O(1) lookups during enumeration.
type NormalizedInstructor struct {
	ID          int
	Unavailable [Horizon]bool
}

// Instance is a validated, normalized ProblemInstance: every reference has
// been checked, and instructor availability has been expanded into a
// lookup table. Only validateInstance produces one.
type Instance struct {
	Rooms       []Room
	Courses     []Course
	Instructors map[int]NormalizedInstructor
}

// validateInstance normalizes and checks a raw ProblemInstance. It performs
// no feasibility reasoning: infeasibility is a solver outcome, never a
// validation error.
func validateInstance(raw ProblemInstance) (*Instance, *Error) {
	if len(raw.Rooms) == 0 {
		return nil, invalidInput(KindEmptyCollection, "no rooms provided")
	}
	if len(raw.Courses) == 0 {
		return nil, invalidInput(KindEmptyCollection, "no courses provided")
	}

	seenRoomID := make(map[int]bool, len(raw.Rooms))
	for _, r := range raw.Rooms {
		if seenRoomID[r.ID] {
			return nil, invalidInput(KindDuplicateID, "duplicate room_id")
		}
		seenRoomID[r.ID] = true
		if r.Capacity < 1 {
			return nil, invalidInput(KindOutOfRange, "room capacity must be >= 1")
		}
	}

	instructors := make(map[int]NormalizedInstructor, len(raw.Instructors))
	seenInstructorID := make(map[int]bool, len(raw.Instructors))
	for _, inst := range raw.Instructors {
		if seenInstructorID[inst.ID] {
			return nil, invalidInput(KindDuplicateID, "duplicate instructor_id")
		}
		seenInstructorID[inst.ID] = true

		var unavailable [Horizon]bool
		for _, slot := range inst.UnavailableSlots {
			if slot < 0 || slot >= Horizon {
				return nil, invalidInput(KindOutOfRange, "unavailable_slots entry out of [0, T) range")
			}
			unavailable[slot] = true
		}
		instructors[inst.ID] = NormalizedInstructor{ID: inst.ID, Unavailable: unavailable}
	}

	seenCourseID := make(map[int]bool, len(raw.Courses))
	for _, c := range raw.Courses {
		if seenCourseID[c.ID] {
			return nil, invalidInput(KindDuplicateID, "duplicate course_id")
		}
		seenCourseID[c.ID] = true

		if c.RequiredCapacity < 1 {
			return nil, invalidInputForCourse(KindOutOfRange, c.ID, "required_capacity must be >= 1")
		}
		if c.DurationSlots < 1 {
			return nil, invalidInputForCourse(KindOutOfRange, c.ID, "duration_slots must be >= 1")
		}
		if c.DurationSlots > Horizon {
			return nil, invalidInputForCourse(KindDurationExceedsHorizon, c.ID, "duration_slots exceeds the planning horizon")
		}
		if _, ok := instructors[c.InstructorID]; !ok {
			return nil, invalidInputForCourse(KindMissingReference, c.ID, "instructor_id does not refer to a known instructor")
		}
	}

	return &Instance{
		Rooms:       raw.Rooms,
		Courses:     raw.Courses,
		Instructors: instructors,
	}, nil
}
