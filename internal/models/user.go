package models

import "time"

// UserRole is the role carried by accounts and tokens.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
	// RoleTeacher is never stored in users; teachers authenticate against faculty.
	RoleTeacher UserRole = "teacher"
)

// User is a stored credential.
type User struct {
	ID           string    `db:"id" json:"_id"`
	Role         UserRole  `db:"role" json:"role"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
