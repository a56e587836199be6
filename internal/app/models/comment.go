package models

import "time"

// Comment is a reply to a post
type Comment struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	UserID    int64     `db:"user_id"`
	Content   string    `db:"content"`
	Likes     []int64   `db:"likes"`
	CreatedAt time.Time `db:"created_at"`
}

// OwnerID returns the id of the author
func (c *Comment) OwnerID() int64 { return c.UserID }
