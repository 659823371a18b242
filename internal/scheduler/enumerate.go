package scheduler

// enumerateCandidates produces every (course, room, start-slot) triple that
// survives the static feasibility pre-filters: the room seats enough
// people, the course's occupied slots fit inside the horizon, and the
// instructor is available for every one of those slots. Enumeration order
// is stable - course input order, then room input order, then ascending
// start slot - so the resulting candidate indices (and hence the MILP
// variable indices built from them) are deterministic.
func enumerateCandidates(instance *Instance) []Candidate {
	var candidates []Candidate
	for _, c := range instance.Courses {
		instructor := instance.Instructors[c.InstructorID]
		for _, r := range instance.Rooms {
			if r.Capacity < c.RequiredCapacity {
				continue
			}
			lastStart := Horizon - c.DurationSlots
			for start := 0; start <= lastStart; start++ {
				if courseFitsInstructor(instructor, start, c.DurationSlots) {
					candidates = append(candidates, Candidate{
						CourseID: c.ID,
						RoomID:   r.ID,
						Start:    start,
					})
				}
			}
		}
	}
	return candidates
}

func courseFitsInstructor(instructor NormalizedInstructor, start, duration int) bool {
	for slot := start; slot < start+duration; slot++ {
		if instructor.Unavailable[slot] {
			return false
		}
	}
	return true
}

// candidatesByCourse groups candidates by the course they belong to,
// preserving enumeration order within each group.
func candidatesByCourse(candidates []Candidate) map[int][]Candidate {
	byCourse := make(map[int][]Candidate)
	for _, cand := range candidates {
		byCourse[cand.CourseID] = append(byCourse[cand.CourseID], cand)
	}
	return byCourse
}
