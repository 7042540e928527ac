package models

import "time"

// Feedback is a student message. Timestamp is whatever the client sent.
type Feedback struct {
	ID        string    `db:"id" json:"_id"`
	Student   string    `db:"student" json:"student"`
	Grade     string    `db:"grade" json:"grade"`
	Message   string    `db:"message" json:"message"`
	Timestamp string    `db:"sent_at" json:"timestamp"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
