package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
	"github.com/yigit/campusnet/internal/pkg/filestorage"
	"github.com/yigit/campusnet/internal/pkg/metrics"
)

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context) ([]dto.ProfileResponse, error)
	GetUser(ctx context.Context, id int64) (*dto.ProfileResponse, error)
	SearchUsers(ctx context.Context, actor *authz.Actor, term string) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateUserRequest, partial bool, picture *multipart.FileHeader) (*dto.ProfileResponse, error)
	DeleteUser(ctx context.Context, actor *authz.Actor, id int64) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	repos      *repositories.Repositories
	profiles   *ProfileService
	storage    filestorage.FileStorage
	authorizer authz.Authorizer
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	repos *repositories.Repositories,
	profiles *ProfileService,
	storage filestorage.FileStorage,
	authorizer authz.Authorizer,
	m *metrics.Metrics,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		repos:      repos,
		profiles:   profiles,
		storage:    storage,
		authorizer: authorizer,
		metrics:    m,
		logger:     logger,
	}
}

// ListUsers returns every user with their records
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]dto.ProfileResponse, error) {
	return s.profiles.ListProfiles(ctx)
}

// GetUser returns one user with their records
func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*dto.ProfileResponse, error) {
	return s.profiles.GetProfile(ctx, id)
}

// searchLimit caps the results of a directory search
const searchLimit = 50

// SearchUsers finds users by username or email. The caller is left out of
// their own results.
func (s *userServiceImpl) SearchUsers(ctx context.Context, actor *authz.Actor, term string) ([]dto.UserResponse, error) {
	query := models.UserQuery{Term: strings.TrimSpace(term), Limit: searchLimit}
	if actor != nil {
		query.ExcludeID = &actor.UserID
	}

	users, err := s.repos.Users.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponses(users), nil
}

// UpdateUser applies a full (PUT) or partial (PATCH) update to the actor's own account
func (s *userServiceImpl) UpdateUser(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateUserRequest, partial bool, picture *multipart.FileHeader) (*dto.ProfileResponse, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(actor, authz.OpUpdate, authz.IdentityTarget{UserID: user.ID}); err != nil {
		return nil, err
	}
	if err := requireComplete(partial, req.Missing()); err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	if req.Username != nil && *req.Username != user.Username {
		errs.add("username", apperrors.ErrUsernameImmutable.Error())
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		validateEmail(errs, email)
		user.Email = email
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if req.IsStudent != nil {
		user.IsStudent = *req.IsStudent
	}
	if req.IsAlumni != nil {
		user.IsAlumni = *req.IsAlumni
	}
	if req.IsFaculty != nil {
		user.IsFaculty = *req.IsFaculty
	}
	if req.About != nil {
		user.About = optionalText(req.About)
	}
	if req.LinkedIn != nil {
		user.LinkedIn = optionalText(req.LinkedIn)
	}
	if req.GitHub != nil {
		user.GitHub = optionalText(req.GitHub)
	}

	oldPicture := user.ProfilePicture
	newPicture, err := s.storePicture(ctx, picture)
	if err != nil {
		return nil, err
	}
	if newPicture != nil {
		user.ProfilePicture = newPicture
	}

	if err := s.repos.Users.Update(ctx, user); err != nil {
		discardBlob(ctx, s.storage, s.logger, newPicture)
		return nil, err
	}
	if newPicture != nil {
		discardBlob(ctx, s.storage, s.logger, oldPicture)
	}

	s.logger.Info().Int64("userID", user.ID).Bool("partial", partial).Msg("User updated")
	return s.profiles.GetProfile(ctx, user.ID)
}

func (s *userServiceImpl) storePicture(ctx context.Context, picture *multipart.FileHeader) (*string, error) {
	if picture == nil {
		return nil, nil
	}
	if err := filestorage.ValidateUpload(picture, models.FolderProfilePictures, "profile_picture"); err != nil {
		return nil, err
	}
	ref, err := s.storage.SaveFile(ctx, picture, models.FolderProfilePictures)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// DeleteUser removes the actor's account and everything it owns in one
// transaction, then deletes the stored files.
func (s *userServiceImpl) DeleteUser(ctx context.Context, actor *authz.Actor, id int64) error {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(actor, authz.OpDelete, authz.IdentityTarget{UserID: user.ID}); err != nil {
		return err
	}

	var blobs []*string
	err = s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		collected, err := collectBlobs(ctx, tx, user)
		if err != nil {
			return err
		}
		if err := deleteSocial(ctx, tx, user.ID); err != nil {
			return err
		}
		if err := tx.Resumes.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Achievements.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Certificates.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Educations.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Users.Delete(ctx, user.ID); err != nil {
			return err
		}
		blobs = collected
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to delete user")
		return err
	}

	for _, ref := range blobs {
		discardBlob(ctx, s.storage, s.logger, ref)
	}

	s.metrics.IncCascadeDelete()
	s.logger.Info().Int64("userID", user.ID).Int("files", len(blobs)).Msg("User deleted with owned records")
	return nil
}

// deleteSocial removes the likes, comments, posts and connections of a user.
// Deleting the user's posts also removes other users' comments on them.
func deleteSocial(ctx context.Context, tx *repositories.Repositories, userID int64) error {
	steps := []func(context.Context, int64) error{
		tx.Comments.DeleteLikesByUserID,
		tx.Posts.DeleteLikesByUserID,
		tx.Comments.DeleteByUserID,
		tx.Posts.DeleteByUserID,
		tx.Connections.DeleteByUserID,
	}
	for _, step := range steps {
		if err := step(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// collectBlobs lists every stored file referenced by user or their records
func collectBlobs(ctx context.Context, repos *repositories.Repositories, user *models.User) ([]*string, error) {
	blobs := []*string{user.ProfilePicture}

	certificates, err := repos.Certificates.List(ctx, &user.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range certificates {
		blobs = append(blobs, c.Image)
	}

	achievements, err := repos.Achievements.List(ctx, &user.ID)
	if err != nil {
		return nil, err
	}
	for _, a := range achievements {
		blobs = append(blobs, a.Image)
	}

	resume, err := repos.Resumes.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		blobs = append(blobs, &resume.File)
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return nil, err
	}
	return blobs, nil
}
