package services

import (
	"context"
	"strings"

	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// CommentService manages comments on posts
type CommentService struct {
	*recordSupport
}

// NewCommentService creates a new CommentService
func NewCommentService(support *recordSupport) *CommentService {
	return &CommentService{recordSupport: support}
}

// ListByPost returns the comments of a post, newest first
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]dto.CommentResponse, error) {
	if _, err := s.repos.Posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.repos.Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentResponses(comments), nil
}

// Get returns one comment
func (s *CommentService) Get(ctx context.Context, id int64) (*dto.CommentResponse, error) {
	c, err := s.repos.Comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCommentResponse(c)
	return &resp, nil
}

// Create adds the actor's comment to a post
func (s *CommentService) Create(ctx context.Context, actor *authz.Actor, postID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if _, err := s.repos.Posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	c := &models.Comment{PostID: postID, UserID: actor.UserID, Content: strings.TrimSpace(req.Content)}
	if c.Content == "" {
		return nil, apperrors.NewValidationError(map[string]string{"content": "comment content cannot be empty"})
	}
	if err := s.repos.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	s.metrics.IncCreated("comment")

	resp := dto.NewCommentResponse(c)
	return &resp, nil
}

// Delete removes a comment the actor wrote
func (s *CommentService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	c, err := s.repos.Comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwned(actor, authz.OpDelete, c.OwnerID()); err != nil {
		return err
	}
	if err := s.repos.Comments.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.IncDeleted("comment")
	return nil
}

// ToggleLike likes a comment for the actor, or takes the like back
func (s *CommentService) ToggleLike(ctx context.Context, actor *authz.Actor, id int64) (*dto.CommentResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if _, err := s.repos.Comments.ToggleLike(ctx, id, actor.UserID); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
