package services

import (
	"context"
	"errors"

	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// ConnectionService manages connection requests between users
type ConnectionService struct {
	*recordSupport
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(support *recordSupport) *ConnectionService {
	return &ConnectionService{recordSupport: support}
}

// Request asks targetID to connect with the actor. When targetID already
// asked the actor, the pending request is accepted instead. The second
// result reports whether a new request was created.
func (s *ConnectionService) Request(ctx context.Context, actor *authz.Actor, targetID int64) (*dto.ConnectionResponse, bool, error) {
	if actor == nil {
		return nil, false, apperrors.ErrUnauthenticated
	}
	if targetID == actor.UserID {
		return nil, false, apperrors.NewValidationError(map[string]string{"user": apperrors.ErrConnectionSelf.Error()})
	}

	exists, err := s.repos.Users.Exists(ctx, targetID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, apperrors.NewResourceNotFoundError("user not found")
	}

	existing, err := s.repos.Connections.GetBetween(ctx, actor.UserID, targetID)
	switch {
	case err == nil:
		return s.resolveExisting(ctx, actor, existing)
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return nil, false, err
	}

	c := &models.Connection{RequesterID: actor.UserID, AddresseeID: targetID, Status: models.ConnectionPending}
	if err := s.repos.Connections.Create(ctx, c); err != nil {
		return nil, false, err
	}
	s.metrics.IncCreated("connection")
	s.logger.Info().Int64("requesterID", c.RequesterID).Int64("addresseeID", c.AddresseeID).Msg("Connection requested")

	resp := dto.NewConnectionResponse(c)
	return &resp, true, nil
}

func (s *ConnectionService) resolveExisting(ctx context.Context, actor *authz.Actor, c *models.Connection) (*dto.ConnectionResponse, bool, error) {
	switch {
	case c.Status == models.ConnectionAccepted:
		return nil, false, apperrors.NewConflictError("user", apperrors.ErrAlreadyConnected)
	case c.RequesterID == actor.UserID:
		return nil, false, apperrors.NewConflictError("user", apperrors.ErrRequestAlreadySent)
	}

	if err := s.repos.Connections.Accept(ctx, c); err != nil {
		return nil, false, err
	}
	s.logger.Info().Int64("requesterID", c.RequesterID).Int64("addresseeID", c.AddresseeID).Msg("Connection accepted on mutual request")
	resp := dto.NewConnectionResponse(c)
	return &resp, false, nil
}

// Accept accepts the pending request requesterID sent to the actor
func (s *ConnectionService) Accept(ctx context.Context, actor *authz.Actor, requesterID int64) (*dto.ConnectionResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	c, err := s.repos.Connections.GetBetween(ctx, requesterID, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrResourceNotFound, apperrors.ErrConnectionNotFound.Error())
		}
		return nil, err
	}
	if c.Status != models.ConnectionPending || c.RequesterID != requesterID {
		return nil, apperrors.NewCustomError(apperrors.ErrResourceNotFound, apperrors.ErrConnectionNotFound.Error())
	}
	if err := s.authorizeOwned(actor, authz.OpUpdate, c.AddresseeID); err != nil {
		return nil, err
	}

	if err := s.repos.Connections.Accept(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("requesterID", c.RequesterID).Int64("addresseeID", c.AddresseeID).Msg("Connection accepted")

	resp := dto.NewConnectionResponse(c)
	return &resp, nil
}

// Remove ends a connection, withdraws a request or declines one. Either side may do it.
func (s *ConnectionService) Remove(ctx context.Context, actor *authz.Actor, otherID int64) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}

	c, err := s.repos.Connections.GetBetween(ctx, actor.UserID, otherID)
	if err != nil {
		return err
	}
	if err := s.repos.Connections.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.metrics.IncDeleted("connection")
	return nil
}

// List returns the accepted connections of userID
func (s *ConnectionService) List(ctx context.Context, userID int64) ([]dto.ConnectionResponse, error) {
	exists, err := s.repos.Users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewResourceNotFoundError("user not found")
	}

	connections, err := s.repos.Connections.List(ctx, userID, models.ConnectionAccepted)
	if err != nil {
		return nil, err
	}
	return dto.NewConnectionResponses(connections), nil
}

// Incoming returns the pending requests addressed to the actor
func (s *ConnectionService) Incoming(ctx context.Context, actor *authz.Actor) ([]dto.ConnectionResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	connections, err := s.repos.Connections.ListIncoming(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return dto.NewConnectionResponses(connections), nil
}
