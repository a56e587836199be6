package services

import (
	"context"
	"strings"

	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// PostService manages the campus feed
type PostService struct {
	*recordSupport
}

// NewPostService creates a new PostService
func NewPostService(support *recordSupport) *PostService {
	return &PostService{recordSupport: support}
}

// Feed returns posts newest first, optionally only those of userID.
// A zero limit means the default page size.
func (s *PostService) Feed(ctx context.Context, userID *int64, limit int) ([]dto.PostResponse, error) {
	switch {
	case limit <= 0:
		limit = defaultFeedLimit
	case limit > maxFeedLimit:
		limit = maxFeedLimit
	}

	posts, err := s.repos.Posts.List(ctx, models.PostFilter{UserID: userID, Limit: uint64(limit)})
	if err != nil {
		return nil, err
	}
	return dto.NewPostResponses(posts), nil
}

// Get returns one post
func (s *PostService) Get(ctx context.Context, id int64) (*dto.PostResponse, error) {
	p, err := s.repos.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPostResponse(p)
	return &resp, nil
}

// Create publishes a post authored by the actor
func (s *PostService) Create(ctx context.Context, actor *authz.Actor, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	authorID, err := s.resolveOwner(ctx, actor, nil)
	if err != nil {
		return nil, err
	}

	p := &models.Post{UserID: authorID, Content: strings.TrimSpace(req.Content)}
	if err := validatePost(p); err != nil {
		return nil, err
	}
	if err := s.repos.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	s.metrics.IncCreated("post")
	s.logger.Info().Int64("postID", p.ID).Int64("userID", authorID).Msg("Post published")

	resp := dto.NewPostResponse(p)
	return &resp, nil
}

// Update edits a post the actor wrote
func (s *PostService) Update(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdatePostRequest, partial bool) (*dto.PostResponse, error) {
	p, err := s.repos.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwned(actor, authz.OpUpdate, p.OwnerID()); err != nil {
		return nil, err
	}
	if err := requireComplete(partial, req.Missing()); err != nil {
		return nil, err
	}

	if req.Content != nil {
		p.Content = strings.TrimSpace(*req.Content)
	}
	if err := validatePost(p); err != nil {
		return nil, err
	}
	if err := s.repos.Posts.Update(ctx, p); err != nil {
		return nil, err
	}

	resp := dto.NewPostResponse(p)
	return &resp, nil
}

// Delete removes a post the actor wrote, with its comments
func (s *PostService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	p, err := s.repos.Posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwned(actor, authz.OpDelete, p.OwnerID()); err != nil {
		return err
	}
	if err := s.repos.Posts.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.IncDeleted("post")
	return nil
}

// ToggleLike likes a post for the actor, or takes the like back
func (s *PostService) ToggleLike(ctx context.Context, actor *authz.Actor, id int64) (*dto.PostResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	liked, err := s.repos.Posts.ToggleLike(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("postID", id).Int64("userID", actor.UserID).Bool("liked", liked).Msg("Post like toggled")
	return s.Get(ctx, id)
}

func validatePost(p *models.Post) error {
	errs := fieldErrors{}
	if p.Content == "" {
		errs.add("content", "post content cannot be empty")
	}
	return errs.err()
}
