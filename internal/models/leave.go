package models

import "time"

// LeaveStatusPending is the initial status of a leave request.
const LeaveStatusPending = "pending"

// Leave is a faculty leave request. Status is free-form after creation.
type Leave struct {
	ID        string    `db:"id" json:"_id"`
	Faculty   string    `db:"faculty" json:"faculty"`
	From      string    `db:"from_date" json:"from"`
	To        string    `db:"to_date" json:"to"`
	Reason    string    `db:"reason" json:"reason"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
