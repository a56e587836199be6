package models

import "time"

// Education is one entry of a user's education history.
type Education struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Degree      string    `db:"degree"`
	Institution string    `db:"institution"`
	StartYear   int       `db:"start_year"`
	EndYear     *int      `db:"end_year"`
	CreatedAt   time.Time `db:"created_at"`
}

// OwnerID returns the id of the owning user
func (e *Education) OwnerID() int64 { return e.UserID }
