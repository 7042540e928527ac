package models

import "time"

// Schedule is one timetable slot of a grade.
type Schedule struct {
	ID        string    `db:"id" json:"_id"`
	Grade     string    `db:"grade" json:"grade"`
	Subject   string    `db:"subject" json:"subject"`
	Faculty   string    `db:"faculty" json:"faculty"`
	Classroom string    `db:"classroom" json:"classroom"`
	Day       string    `db:"day" json:"day"`
	Time      string    `db:"time_slot" json:"time"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ScheduleFilter narrows schedule listings. Empty fields match everything.
type ScheduleFilter struct {
	Grade   string
	Faculty string
}

// SlotMatch identifies the schedule entry a swap request targets.
type SlotMatch struct {
	Grade   string
	Day     string
	Time    string
	Faculty string
}
