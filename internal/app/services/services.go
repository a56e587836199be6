package services

import (
	"github.com/rs/zerolog"
	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/pkg/auth"
	"github.com/yigit/campusnet/internal/pkg/filestorage"
	"github.com/yigit/campusnet/internal/pkg/metrics"
)

// Dependencies are the collaborators shared by every service
type Dependencies struct {
	Repos       *repositories.Repositories
	Storage     filestorage.FileStorage
	Authorizer  authz.Authorizer
	JWT         *auth.JWTService
	Revocations auth.RevocationList
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
	// BcryptCost defaults to auth.BcryptCost when zero
	BcryptCost int
}

// Services holds all the service instances
type Services struct {
	Auth         *AuthService
	Users        UserService
	Profiles     *ProfileService
	Educations   *EducationService
	Certificates *CertificateService
	Achievements *AchievementService
	Resumes      *ResumeService
	Posts        *PostService
	Comments     *CommentService
	Connections  *ConnectionService
}

// NewServices wires every service from deps
func NewServices(deps Dependencies) *Services {
	if deps.Authorizer == nil {
		deps.Authorizer = authz.OwnerOrReadOnly{}
	}
	if deps.BcryptCost == 0 {
		deps.BcryptCost = auth.BcryptCost
	}

	profiles := NewProfileService(deps.Repos, deps.Logger)
	records := newRecordSupport(deps)

	return &Services{
		Auth:         NewAuthService(deps.Repos.Users, profiles, deps.JWT, deps.Revocations, deps.Metrics, deps.BcryptCost, deps.Logger),
		Users:        NewUserService(deps.Repos, profiles, deps.Storage, deps.Authorizer, deps.Metrics, deps.Logger),
		Profiles:     profiles,
		Educations:   NewEducationService(records),
		Certificates: NewCertificateService(records),
		Achievements: NewAchievementService(records),
		Resumes:      NewResumeService(records),
		Posts:        NewPostService(records),
		Comments:     NewCommentService(records),
		Connections:  NewConnectionService(records),
	}
}
