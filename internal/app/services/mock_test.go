package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/app/repositories/mocks"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var errDatabaseDown = errors.New("database down")

func newMockedServices(t *testing.T) (*Services, *mocks.MockUserRepository, *mocks.MockEducationRepository, *mocks.MockResumeRepository) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	educations := mocks.NewMockEducationRepository(ctrl)
	resumes := mocks.NewMockResumeRepository(ctrl)

	svc := NewServices(Dependencies{
		Repos: &repositories.Repositories{
			Users:        users,
			Educations:   educations,
			Certificates: mocks.NewMockCertificateRepository(ctrl),
			Achievements: mocks.NewMockAchievementRepository(ctrl),
			Resumes:      resumes,
		},
		Storage:    newFakeStorage(),
		Logger:     zerolog.Nop(),
		BcryptCost: bcrypt.MinCost,
	})
	return svc, users, educations, resumes
}

func TestSignupPropagatesLookupError(t *testing.T) {
	svc, users, _, _ := newMockedServices(t)
	users.EXPECT().GetByUsername(gomock.Any(), "john_doe").Return(nil, errDatabaseDown)

	_, err := svc.Auth.Signup(context.Background(), &dto.SignupRequest{Username: "john_doe", Email: "john@example.com", Password: "strongpw123"})
	assert.ErrorIs(t, err, errDatabaseDown)
}

func TestSignupRaceLostToConstraint(t *testing.T) {
	svc, users, _, _ := newMockedServices(t)
	notFound := apperrors.NewResourceNotFoundError("user not found")
	users.EXPECT().GetByUsername(gomock.Any(), "john_doe").Return(nil, notFound)
	users.EXPECT().GetByEmail(gomock.Any(), "john@example.com").Return(nil, notFound)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(apperrors.NewConflictError("username", apperrors.ErrUsernameAlreadyExists))

	_, err := svc.Auth.Signup(context.Background(), &dto.SignupRequest{Username: "john_doe", Email: "john@example.com", Password: "strongpw123"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLoginPropagatesRepositoryError(t *testing.T) {
	svc, users, _, _ := newMockedServices(t)
	users.EXPECT().GetByUsername(gomock.Any(), "john_doe").Return(nil, errDatabaseDown)

	_, err := svc.Auth.Login(context.Background(), &dto.LoginRequest{Username: "john_doe", Password: "strongpw123"})
	assert.ErrorIs(t, err, errDatabaseDown)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestEducationCreateChecksOwnerBeforeWriting(t *testing.T) {
	svc, users, educations, _ := newMockedServices(t)
	actor := &authz.Actor{UserID: 1, Username: "john_doe"}

	users.EXPECT().Exists(gomock.Any(), int64(1)).Return(false, nil)
	educations.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Educations.Create(context.Background(), actor, &dto.CreateEducationRequest{Degree: "BSc", Institution: "U", StartYear: 2020})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestEducationListPropagatesError(t *testing.T) {
	svc, _, educations, _ := newMockedServices(t)
	owner := int64(3)
	educations.EXPECT().List(gomock.Any(), &owner).Return(nil, errDatabaseDown)

	_, err := svc.Educations.List(context.Background(), &owner)
	assert.ErrorIs(t, err, errDatabaseDown)
}

func TestResumeCreateDiscardsFileOnConflict(t *testing.T) {
	svc, users, _, resumes := newMockedServices(t)
	storage := svc.Resumes.storage.(*fakeStorage)
	actor := &authz.Actor{UserID: 1, Username: "john_doe"}

	users.EXPECT().Exists(gomock.Any(), int64(1)).Return(true, nil)
	resumes.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(&models.Resume{})).
		Return(apperrors.NewConflictError("user", apperrors.ErrResumeAlreadyExists))

	_, err := svc.Resumes.Create(context.Background(), actor, &dto.CreateResumeRequest{}, uploadFile(t, "file", "cv.pdf"))
	require.ErrorIs(t, err, apperrors.ErrResumeAlreadyExists)
	assert.Equal(t, 0, storage.live())
	assert.Len(t, storage.deleted, 1)
}

func TestDeleteUserSurfacesConcurrentWriteConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	certificates := mocks.NewMockCertificateRepository(ctrl)
	achievements := mocks.NewMockAchievementRepository(ctrl)
	resumes := mocks.NewMockResumeRepository(ctrl)
	educations := mocks.NewMockEducationRepository(ctrl)
	posts := mocks.NewMockPostRepository(ctrl)
	comments := mocks.NewMockCommentRepository(ctrl)
	connections := mocks.NewMockConnectionRepository(ctrl)

	storage := newFakeStorage()
	svc := NewServices(Dependencies{
		Repos: &repositories.Repositories{
			Users:        users,
			Educations:   educations,
			Certificates: certificates,
			Achievements: achievements,
			Resumes:      resumes,
			Posts:        posts,
			Comments:     comments,
			Connections:  connections,
		},
		Storage:    storage,
		Logger:     zerolog.Nop(),
		BcryptCost: bcrypt.MinCost,
	})

	ctx := context.Background()
	picture, err := storage.SaveFile(ctx, uploadFile(t, "picture", "me.png"), models.FolderProfilePictures)
	require.NoError(t, err)
	user := &models.User{ID: 7, Username: "john_doe", ProfilePicture: &picture}

	users.EXPECT().GetByID(gomock.Any(), int64(7)).Return(user, nil)
	certificates.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	achievements.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	resumes.EXPECT().GetByUserID(gomock.Any(), int64(7)).Return(nil, apperrors.NewResourceNotFoundError("resume not found"))
	comments.EXPECT().DeleteLikesByUserID(gomock.Any(), int64(7)).Return(nil)
	posts.EXPECT().DeleteLikesByUserID(gomock.Any(), int64(7)).Return(nil)
	comments.EXPECT().DeleteByUserID(gomock.Any(), int64(7)).Return(nil)
	posts.EXPECT().DeleteByUserID(gomock.Any(), int64(7)).Return(nil)
	connections.EXPECT().DeleteByUserID(gomock.Any(), int64(7)).Return(nil)
	resumes.EXPECT().DeleteByUserID(gomock.Any(), int64(7)).Return(nil)
	achievements.EXPECT().DeleteByUserID(gomock.Any(), int64(7)).Return(nil)
	certificates.EXPECT().DeleteByUserID(gomock.Any(), int64(7)).Return(nil)
	educations.EXPECT().DeleteByUserID(gomock.Any(), int64(7)).Return(nil)
	users.EXPECT().Delete(gomock.Any(), int64(7)).
		Return(apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrUserHasRecords.Error()))

	err = svc.Users.DeleteUser(ctx, &authz.Actor{UserID: 7, Username: "john_doe"}, 7)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 1, storage.live())
	assert.Empty(t, storage.deleted)
}
