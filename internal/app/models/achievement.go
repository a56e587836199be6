package models

import "time"

// Achievement is an award or accomplishment listed on a user's profile.
type Achievement struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Date        *time.Time `db:"date"`
	Image       *string    `db:"image"`
	CreatedAt   time.Time  `db:"created_at"`
}

// OwnerID returns the id of the owning user
func (a *Achievement) OwnerID() int64 { return a.UserID }
