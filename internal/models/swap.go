package models

import "time"

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "pending"
	SwapStatusApproved SwapStatus = "approved"
	SwapStatusRejected SwapStatus = "rejected"
)

// SwapRequest proposes that ToFaculty covers FromFaculty's slot.
type SwapRequest struct {
	ID          string     `db:"id" json:"_id"`
	FromFaculty string     `db:"from_faculty" json:"fromFaculty"`
	ToFaculty   string     `db:"to_faculty" json:"toFaculty"`
	Grade       string     `db:"grade" json:"grade"`
	Day         string     `db:"day" json:"day"`
	Time        string     `db:"time_slot" json:"time"`
	Status      SwapStatus `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Slot returns the schedule match for the requesting faculty.
func (s *SwapRequest) Slot() SlotMatch {
	return SlotMatch{Grade: s.Grade, Day: s.Day, Time: s.Time, Faculty: s.FromFaculty}
}
