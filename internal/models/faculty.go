package models

import "time"

// Faculty is a teaching staff member. Name doubles as the teacher login.
type Faculty struct {
	ID        string    `db:"id" json:"_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
