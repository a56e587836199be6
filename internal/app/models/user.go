package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	Password       string    `json:"-" db:"password"` // bcrypt hash, never serialized
	IsStudent      bool      `json:"is_student" db:"is_student"`
	IsAlumni       bool      `json:"is_alumni" db:"is_alumni"`
	IsFaculty      bool      `json:"is_faculty" db:"is_faculty"`
	About          *string   `json:"about" db:"about"`
	LinkedIn       *string   `json:"linkedin" db:"linkedin"`
	GitHub         *string   `json:"github" db:"github"`
	ProfilePicture *string   `json:"profile_picture" db:"profile_picture"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// UserQuery is a directory search. Term matches username or email,
// case-insensitively; ExcludeID drops the searching user.
type UserQuery struct {
	Term      string
	ExcludeID *int64
	Limit     uint64
}
