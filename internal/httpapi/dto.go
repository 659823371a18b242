package httpapi

import "github.com/acme-u/timetabler/internal/scheduler"

// solveRequest is the wire shape of a solve request.
type solveRequest struct {
	Rooms       []roomDTO       `json:"rooms"`
	Courses     []courseDTO     `json:"courses"`
	Instructors []instructorDTO `json:"instructors"`
}

type roomDTO struct {
	ID       int `json:"id"`
	Capacity int `json:"capacity"`
}

type courseDTO struct {
	ID               int `json:"id"`
	InstructorID     int `json:"instructor_id"`
	DurationSlots    int `json:"duration_slots"`
	RequiredCapacity int `json:"required_capacity"`
}

type instructorDTO struct {
	ID               int   `json:"id"`
	UnavailableSlots []int `json:"unavailable_slots"`
}

func (r solveRequest) toInstance() scheduler.ProblemInstance {
	rooms := make([]scheduler.Room, len(r.Rooms))
	for i, rm := range r.Rooms {
		rooms[i] = scheduler.Room{ID: rm.ID, Capacity: rm.Capacity}
	}
	courses := make([]scheduler.Course, len(r.Courses))
	for i, c := range r.Courses {
		courses[i] = scheduler.Course{
			ID:               c.ID,
			InstructorID:     c.InstructorID,
			DurationSlots:    c.DurationSlots,
			RequiredCapacity: c.RequiredCapacity,
		}
	}
	instructors := make([]scheduler.Instructor, len(r.Instructors))
	for i, ins := range r.Instructors {
		instructors[i] = scheduler.Instructor{ID: ins.ID, UnavailableSlots: ins.UnavailableSlots}
	}
	return scheduler.ProblemInstance{Rooms: rooms, Courses: courses, Instructors: instructors}
}

// scheduleEntryDTO is the wire shape of one schedule entry.
type scheduleEntryDTO struct {
	CourseID  int `json:"course_id"`
	RoomID    int `json:"room_id"`
	StartSlot int `json:"start_slot"`
	EndSlot   int `json:"end_slot"`
}

func entriesToDTO(entries []scheduler.ScheduleEntry) []scheduleEntryDTO {
	out := make([]scheduleEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = scheduleEntryDTO{
			CourseID:  e.CourseID,
			RoomID:    e.RoomID,
			StartSlot: e.StartSlot,
			EndSlot:   e.EndSlotExclude,
		}
	}
	return out
}
