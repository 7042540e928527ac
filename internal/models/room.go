package models

import "time"

// RoomKind selects the collection a Room lives in.
type RoomKind string

const (
	RoomKindClassroom RoomKind = "classrooms"
	RoomKindLab       RoomKind = "labs"
)

// Label is the singular display name of the kind.
func (k RoomKind) Label() string {
	if k == RoomKindLab {
		return "lab"
	}
	return "classroom"
}

// Room is a classroom or a lab; both only carry a name.
type Room struct {
	ID        string    `db:"id" json:"_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
