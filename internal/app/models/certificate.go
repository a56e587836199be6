package models

import "time"

// Certificate is a certification earned by a user.
type Certificate struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	Title           string    `db:"title"`
	IssuedBy        string    `db:"issued_by"`
	IssueDate       time.Time `db:"issue_date"`
	Image           *string   `db:"image"`
	CertificateLink *string   `db:"certificate_link"`
	CreatedAt       time.Time `db:"created_at"`
}

// OwnerID returns the id of the owning user
func (c *Certificate) OwnerID() int64 { return c.UserID }
