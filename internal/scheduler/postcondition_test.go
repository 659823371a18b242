package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneRoomTwoCourseInstance() ProblemInstance {
	return ProblemInstance{
		Rooms: []Room{{ID: 1, Capacity: 10}},
		Courses: []Course{
			{ID: 1, InstructorID: 1, DurationSlots: 2, RequiredCapacity: 5},
			{ID: 2, InstructorID: 1, DurationSlots: 2, RequiredCapacity: 5},
		},
		Instructors: []Instructor{{ID: 1}},
	}
}

func TestValidate_acceptsWellFormedSchedule(t *testing.T) {
	raw := oneRoomTwoCourseInstance()
	schedule := &Schedule{
		Entries: []ScheduleEntry{
			{CourseID: 1, RoomID: 1, StartSlot: 0, EndSlotExclude: 2},
			{CourseID: 2, RoomID: 1, StartSlot: 4, EndSlotExclude: 6},
		},
		Score: 4,
	}
	assert.Nil(t, Validate(schedule, raw))
}

func TestValidate_rejectsRoomConflict(t *testing.T) {
	raw := oneRoomTwoCourseInstance()
	schedule := &Schedule{
		Entries: []ScheduleEntry{
			{CourseID: 1, RoomID: 1, StartSlot: 0, EndSlotExclude: 2},
			{CourseID: 2, RoomID: 1, StartSlot: 1, EndSlotExclude: 3},
		},
		Score: 4,
	}
	err := Validate(schedule, raw)
	require.NotNil(t, err)
	assert.Equal(t, KindPostConditionViolated, err.Kind)
}

func TestValidate_rejectsMissingCourse(t *testing.T) {
	raw := oneRoomTwoCourseInstance()
	schedule := &Schedule{
		Entries: []ScheduleEntry{
			{CourseID: 1, RoomID: 1, StartSlot: 0, EndSlotExclude: 2},
		},
		Score: 2,
	}
	err := Validate(schedule, raw)
	require.NotNil(t, err)
	assert.Equal(t, KindPostConditionViolated, err.Kind)
}

func TestValidate_rejectsCapacityViolation(t *testing.T) {
	raw := oneRoomTwoCourseInstance()
	raw.Rooms[0].Capacity = 3 // below required_capacity of 5
	schedule := &Schedule{
		Entries: []ScheduleEntry{
			{CourseID: 1, RoomID: 1, StartSlot: 0, EndSlotExclude: 2},
			{CourseID: 2, RoomID: 1, StartSlot: 4, EndSlotExclude: 6},
		},
		Score: 4,
	}
	err := Validate(schedule, raw)
	require.NotNil(t, err)
	assert.Equal(t, KindPostConditionViolated, err.Kind)
}

func TestValidate_rejectsWrongScore(t *testing.T) {
	raw := oneRoomTwoCourseInstance()
	schedule := &Schedule{
		Entries: []ScheduleEntry{
			{CourseID: 1, RoomID: 1, StartSlot: 0, EndSlotExclude: 2},
			{CourseID: 2, RoomID: 1, StartSlot: 4, EndSlotExclude: 6},
		},
		Score: 999,
	}
	err := Validate(schedule, raw)
	require.NotNil(t, err)
	assert.Equal(t, KindPostConditionViolated, err.Kind)
}

func TestValidate_rejectsInstructorUnavailableSlot(t *testing.T) {
	raw := oneRoomTwoCourseInstance()
	raw.Instructors[0].UnavailableSlots = []int{0, 1}
	schedule := &Schedule{
		Entries: []ScheduleEntry{
			{CourseID: 1, RoomID: 1, StartSlot: 0, EndSlotExclude: 2},
			{CourseID: 2, RoomID: 1, StartSlot: 4, EndSlotExclude: 6},
		},
		Score: 2,
	}
	err := Validate(schedule, raw)
	require.NotNil(t, err)
	assert.Equal(t, KindPostConditionViolated, err.Kind)
}
