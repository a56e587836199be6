package models

import "time"

// Post is a short text update in the campus feed.
// Likes and CommentCount are derived from the like and comment tables.
type Post struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Content      string    `db:"content"`
	Likes        []int64   `db:"likes"`
	CommentCount int       `db:"comment_count"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// OwnerID returns the id of the author
func (p *Post) OwnerID() int64 { return p.UserID }

// PostFilter narrows a feed query
type PostFilter struct {
	UserID *int64
	Limit  uint64
}
