package dto

import (
	"time"

	"github.com/yigit/campusnet/internal/app/models"
)

// ConnectionResponse is the wire form of a connection or pending request
type ConnectionResponse struct {
	ID          int64                   `json:"id"`
	RequesterID int64                   `json:"requester"`
	AddresseeID int64                   `json:"addressee"`
	Status      models.ConnectionStatus `json:"status" example:"pending"`
	CreatedAt   time.Time               `json:"created_at"`
	AcceptedAt  *time.Time              `json:"accepted_at"`
}

// NewConnectionResponse converts a models.Connection
func NewConnectionResponse(c *models.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:          c.ID,
		RequesterID: c.RequesterID,
		AddresseeID: c.AddresseeID,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		AcceptedAt:  c.AcceptedAt,
	}
}

// NewConnectionResponses converts a slice, never returning nil
func NewConnectionResponses(items []*models.Connection) []ConnectionResponse {
	out := make([]ConnectionResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewConnectionResponse(c))
	}
	return out
}
