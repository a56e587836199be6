package services

import (
	"context"
	"mime/multipart"
	"strings"

	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
)

// AchievementService manages achievements and their images
type AchievementService struct {
	*recordSupport
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(support *recordSupport) *AchievementService {
	return &AchievementService{recordSupport: support}
}

// List returns achievements, optionally only those of userID
func (s *AchievementService) List(ctx context.Context, userID *int64) ([]dto.AchievementResponse, error) {
	items, err := s.repos.Achievements.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewAchievementResponses(items), nil
}

// Get returns one achievement
func (s *AchievementService) Get(ctx context.Context, id int64) (*dto.AchievementResponse, error) {
	a, err := s.repos.Achievements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAchievementResponse(a)
	return &resp, nil
}

// Create adds an achievement with an optional image
func (s *AchievementService) Create(ctx context.Context, actor *authz.Actor, req *dto.CreateAchievementRequest, image *multipart.FileHeader) (*dto.AchievementResponse, error) {
	ownerID, err := s.resolveOwner(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	a := &models.Achievement{
		UserID:      ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: optionalText(req.Description),
	}
	if req.Date != nil && *req.Date != "" {
		d := parseDate(errs, "date", *req.Date)
		a.Date = &d
	}
	if a.Title == "" {
		errs.add("title", "this field may not be blank")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	a.Image, err = s.store(ctx, image, models.FolderAchievements, "image")
	if err != nil {
		return nil, err
	}
	if err := s.repos.Achievements.Create(ctx, a); err != nil {
		s.discard(ctx, a.Image)
		return nil, err
	}
	s.metrics.IncCreated("achievement")

	resp := dto.NewAchievementResponse(a)
	return &resp, nil
}

// Update changes an achievement the actor owns. A new image replaces the old one.
func (s *AchievementService) Update(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateAchievementRequest, partial bool, image *multipart.FileHeader) (*dto.AchievementResponse, error) {
	a, err := s.repos.Achievements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwned(actor, authz.OpUpdate, a.OwnerID()); err != nil {
		return nil, err
	}
	if err := requireComplete(partial, req.Missing()); err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil || !partial {
		a.Description = optionalText(req.Description)
	}
	switch {
	case req.Date != nil && *req.Date != "":
		d := parseDate(errs, "date", *req.Date)
		a.Date = &d
	case req.Date != nil || !partial:
		a.Date = nil
	}
	if a.Title == "" {
		errs.add("title", "this field may not be blank")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	oldImage := a.Image
	newImage, err := s.store(ctx, image, models.FolderAchievements, "image")
	if err != nil {
		return nil, err
	}
	if newImage != nil {
		a.Image = newImage
	}

	if err := s.repos.Achievements.Update(ctx, a); err != nil {
		s.discard(ctx, newImage)
		return nil, err
	}
	if newImage != nil {
		s.discard(ctx, oldImage)
	}

	resp := dto.NewAchievementResponse(a)
	return &resp, nil
}

// Delete removes an achievement the actor owns together with its image
func (s *AchievementService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	a, err := s.repos.Achievements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwned(actor, authz.OpDelete, a.OwnerID()); err != nil {
		return err
	}
	if err := s.repos.Achievements.Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, a.Image)
	s.metrics.IncDeleted("achievement")
	return nil
}
