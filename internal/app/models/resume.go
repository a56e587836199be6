package models

import "time"

// Resume is the single resume file of a user. UploadedAt is set on creation
// and never changes, even when the file is replaced.
type Resume struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	File       string    `db:"file"`
	UploadedAt time.Time `db:"uploaded_at"`
}

// OwnerID returns the id of the owning user
func (r *Resume) OwnerID() int64 { return r.UserID }
