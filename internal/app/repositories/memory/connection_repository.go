package memory

import (
	"context"

	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// ConnectionRepository is the in-memory connection store
type ConnectionRepository struct {
	store *Store
}

func (s *Store) connectionBetween(a, b int64) (models.Connection, bool) {
	for _, c := range s.data.connections {
		if c.Involves(a) && c.Involves(b) {
			return c, true
		}
	}
	return models.Connection{}, false
}

// Create inserts a connection. A second connection for the same pair is a conflict.
func (r *ConnectionRepository) Create(_ context.Context, connection *models.Connection) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range []int64{connection.RequesterID, connection.AddresseeID} {
		if _, ok := r.store.data.users[id]; !ok {
			return notFound("user")
		}
	}
	if _, exists := r.store.connectionBetween(connection.RequesterID, connection.AddresseeID); exists {
		return apperrors.NewConflictError("user", apperrors.ErrRequestAlreadySent)
	}
	connection.ID = r.store.id()
	connection.CreatedAt = r.store.now()
	r.store.data.connections[connection.ID] = *connection
	return nil
}

// GetBetween finds the connection of a pair in either direction
func (r *ConnectionRepository) GetBetween(_ context.Context, userA, userB int64) (*models.Connection, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.connectionBetween(userA, userB)
	if !ok {
		return nil, notFound("connection")
	}
	return &c, nil
}

func (r *ConnectionRepository) list(match func(models.Connection) bool) []*models.Connection {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	connections := []*models.Connection{}
	for _, id := range sortedKeys(r.store.data.connections) {
		c := r.store.data.connections[id]
		if match(c) {
			connections = append(connections, &c)
		}
	}
	return connections
}

// List retrieves the connections of a user with the given status
func (r *ConnectionRepository) List(_ context.Context, userID int64, status models.ConnectionStatus) ([]*models.Connection, error) {
	return r.list(func(c models.Connection) bool { return c.Involves(userID) && c.Status == status }), nil
}

// ListIncoming retrieves the pending requests addressed to a user
func (r *ConnectionRepository) ListIncoming(_ context.Context, userID int64) ([]*models.Connection, error) {
	return r.list(func(c models.Connection) bool {
		return c.AddresseeID == userID && c.Status == models.ConnectionPending
	}), nil
}

// Accept turns a pending request into a connection
func (r *ConnectionRepository) Accept(_ context.Context, connection *models.Connection) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.data.connections[connection.ID]
	if !ok || existing.Status != models.ConnectionPending {
		return apperrors.NewCustomError(apperrors.ErrResourceNotFound, apperrors.ErrConnectionNotFound.Error())
	}
	now := r.store.now()
	existing.Status = models.ConnectionAccepted
	existing.AcceptedAt = &now
	r.store.data.connections[connection.ID] = existing
	*connection = existing
	return nil
}

// Delete removes a connection or pending request
func (r *ConnectionRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.connections[id]; !ok {
		return notFound("connection")
	}
	delete(r.store.data.connections, id)
	return nil
}

// DeleteByUserID removes every connection and request a user is part of
func (r *ConnectionRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, c := range r.store.data.connections {
		if c.Involves(userID) {
			delete(r.store.data.connections, id)
		}
	}
	return nil
}
