package models

import "time"

// Grade is a class cohort such as year 2, branch CSE, section A.
type Grade struct {
	ID        string    `db:"id" json:"_id"`
	Year      string    `db:"year" json:"year"`
	Branch    string    `db:"branch" json:"branch"`
	Section   string    `db:"section" json:"section"`
	Shift     string    `db:"shift" json:"shift"`
	Capacity  int       `db:"capacity" json:"capacity"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
