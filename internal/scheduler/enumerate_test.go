package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateCandidates_filtersOnCapacityHorizonAndAvailability(t *testing.T) {
	raw := ProblemInstance{
		Rooms: []Room{
			{ID: 1, Capacity: 10},
			{ID: 2, Capacity: 50},
		},
		Courses: []Course{
			{ID: 1, InstructorID: 1, DurationSlots: 2, RequiredCapacity: 40},
		},
		Instructors: []Instructor{
			{ID: 1, UnavailableSlots: []int{0, 1, 2}},
		},
	}
	instance, err := validateInstance(raw)
	require.Nil(t, err)

	candidates := enumerateCandidates(instance)

	for _, c := range candidates {
		assert.Equal(t, 2, c.RoomID, "room 1 is too small for the course's required capacity")
		assert.GreaterOrEqual(t, c.Start, 3, "instructor is unavailable for slots 0-2")
	}
	assert.NotEmpty(t, candidates)
}

func TestEnumerateCandidates_stableOrder(t *testing.T) {
	raw := ProblemInstance{
		Rooms: []Room{{ID: 1, Capacity: 10}, {ID: 2, Capacity: 10}},
		Courses: []Course{
			{ID: 1, InstructorID: 1, DurationSlots: 1, RequiredCapacity: 1},
			{ID: 2, InstructorID: 1, DurationSlots: 1, RequiredCapacity: 1},
		},
		Instructors: []Instructor{{ID: 1}},
	}
	instance, err := validateInstance(raw)
	require.Nil(t, err)

	a := enumerateCandidates(instance)
	b := enumerateCandidates(instance)
	assert.Equal(t, a, b)

	// course order, then room order, then ascending start slot.
	require.NotEmpty(t, a)
	assert.Equal(t, 1, a[0].CourseID)
	assert.Equal(t, 1, a[0].RoomID)
	assert.Equal(t, 0, a[0].Start)
}

func TestEnumerateCandidates_courseWithNoCandidates(t *testing.T) {
	raw := ProblemInstance{
		Rooms:   []Room{{ID: 1, Capacity: 10}},
		Courses: []Course{{ID: 1, InstructorID: 1, DurationSlots: 7, RequiredCapacity: 1}},
		Instructors: []Instructor{
			{ID: 1, UnavailableSlots: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		},
	}
	instance, err := validateInstance(raw)
	require.Nil(t, err)

	candidates := enumerateCandidates(instance)
	assert.Empty(t, candidatesByCourse(candidates)[1])
}
