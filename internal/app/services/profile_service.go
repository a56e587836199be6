package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
	"golang.org/x/sync/errgroup"
)

// ProfileService composes a user with every record they own
type ProfileService struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(repos *repositories.Repositories, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repos: repos, logger: logger}
}

// GetProfile returns the aggregated profile of one user
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		educations   []*models.Education
		certificates []*models.Certificate
		achievements []*models.Achievement
		resume       *models.Resume
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		educations, err = s.repos.Educations.List(gctx, &userID)
		return err
	})
	g.Go(func() (err error) {
		certificates, err = s.repos.Certificates.List(gctx, &userID)
		return err
	})
	g.Go(func() (err error) {
		achievements, err = s.repos.Achievements.List(gctx, &userID)
		return err
	})
	g.Go(func() error {
		r, err := s.repos.Resumes.GetByUserID(gctx, userID)
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil
		}
		resume = r
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to load profile records")
		return nil, err
	}

	return &dto.ProfileResponse{
		UserResponse: dto.NewUserResponse(user),
		Educations:   dto.NewEducationResponses(educations),
		Certificates: dto.NewCertificateResponses(certificates),
		Achievements: dto.NewAchievementResponses(achievements),
		Resume:       dto.NewResumeResponse(resume),
	}, nil
}

// ListProfiles returns every user's profile. Each record type is loaded once
// and grouped by owner.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]dto.ProfileResponse, error) {
	var (
		users        []*models.User
		educations   []*models.Education
		certificates []*models.Certificate
		achievements []*models.Achievement
		resumes      []*models.Resume
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.repos.Users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		educations, err = s.repos.Educations.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		certificates, err = s.repos.Certificates.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		achievements, err = s.repos.Achievements.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		resumes, err = s.repos.Resumes.List(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to load profiles")
		return nil, err
	}

	eduByUser := groupByOwner(educations, func(e *models.Education) int64 { return e.UserID })
	certByUser := groupByOwner(certificates, func(c *models.Certificate) int64 { return c.UserID })
	achByUser := groupByOwner(achievements, func(a *models.Achievement) int64 { return a.UserID })
	resumeByUser := make(map[int64]*models.Resume, len(resumes))
	for _, r := range resumes {
		resumeByUser[r.UserID] = r
	}

	profiles := make([]dto.ProfileResponse, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, dto.ProfileResponse{
			UserResponse: dto.NewUserResponse(u),
			Educations:   dto.NewEducationResponses(eduByUser[u.ID]),
			Certificates: dto.NewCertificateResponses(certByUser[u.ID]),
			Achievements: dto.NewAchievementResponses(achByUser[u.ID]),
			Resume:       dto.NewResumeResponse(resumeByUser[u.ID]),
		})
	}
	return profiles, nil
}

func groupByOwner[T any](items []*T, owner func(*T) int64) map[int64][]*T {
	grouped := make(map[int64][]*T)
	for _, item := range items {
		id := owner(item)
		grouped[id] = append(grouped[id], item)
	}
	return grouped
}
