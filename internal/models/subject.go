package models

import "time"

// Subject is a course taught to a grade. Faculty is free text.
type Subject struct {
	ID        string    `db:"id" json:"_id"`
	Grade     string    `db:"grade" json:"grade"`
	Subject   string    `db:"subject" json:"subject"`
	Type      string    `db:"type" json:"type"`
	Faculty   string    `db:"faculty" json:"faculty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
