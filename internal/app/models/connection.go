package models

import "time"

// ConnectionStatus is the state of a connection between two users
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
)

// Connection links two users. RequesterID asked, AddresseeID answers.
// A pair of users has at most one connection, in either direction.
type Connection struct {
	ID          int64            `db:"id"`
	RequesterID int64            `db:"requester_id"`
	AddresseeID int64            `db:"addressee_id"`
	Status      ConnectionStatus `db:"status"`
	CreatedAt   time.Time        `db:"created_at"`
	AcceptedAt  *time.Time       `db:"accepted_at"`
}

// Involves reports whether userID is one side of the connection
func (c *Connection) Involves(userID int64) bool {
	return c.RequesterID == userID || c.AddresseeID == userID
}

// Peer returns the other side of the connection as seen by userID
func (c *Connection) Peer(userID int64) int64 {
	if c.RequesterID == userID {
		return c.AddresseeID
	}
	return c.RequesterID
}
