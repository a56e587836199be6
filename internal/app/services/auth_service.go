package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
	"github.com/yigit/campusnet/internal/pkg/auth"
	"github.com/yigit/campusnet/internal/pkg/metrics"
)

// AuthService handles account provisioning and authentication
type AuthService struct {
	userRepo    repositories.UserRepository
	profiles    *ProfileService
	jwtService  *auth.JWTService
	revocations auth.RevocationList
	metrics     *metrics.Metrics
	bcryptCost  int
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	profiles *ProfileService,
	jwtService *auth.JWTService,
	revocations auth.RevocationList,
	m *metrics.Metrics,
	bcryptCost int,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profiles:    profiles,
		jwtService:  jwtService,
		revocations: revocations,
		metrics:     m,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Signup creates an account. Username and email collisions are conflicts and
// leave nothing behind.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	errs := fieldErrors{}
	validateUsername(errs, username)
	validateEmail(errs, email)
	if len(req.Password) < 8 {
		errs.add("password", "ensure this field has at least 8 characters")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPasswordWithCost(req.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		IsStudent: req.IsStudent,
		IsAlumni:  req.IsAlumni,
		IsFaculty: req.IsFaculty,
		About:     optionalText(req.About),
		LinkedIn:  optionalText(req.LinkedIn),
		GitHub:    optionalText(req.GitHub),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.IncSignup()
	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User signed up")

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ensureAvailable reports every taken field (username, email) before any
// write. The unique constraints still decide races.
func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	taken := map[string]error{}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		taken["username"] = apperrors.ErrUsernameAlreadyExists
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return err
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		taken["email"] = apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return err
	}

	if len(taken) > 0 {
		return apperrors.NewConflictFieldsError(taken)
	}
	return nil
}

// Login verifies credentials and issues an access token. Unknown users and
// wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	var (
		user *models.User
		err  error
	)
	if req.Username != "" {
		user, err = s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	} else {
		user, err = s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.metrics.IncLogin("failure")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.metrics.IncLogin("failure")
		s.logger.Warn().Int64("userID", user.ID).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate access token")
		return nil, err
	}

	s.metrics.IncLogin("success")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        dto.NewUserResponse(user),
	}, nil
}

// Logout revokes the presented token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.RemainingTTL(timeNow())
	if err := s.revocations.Revoke(ctx, claims.TokenID(), ttl); err != nil {
		s.logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Failed to revoke token")
		return err
	}
	s.logger.Info().Int64("userID", claims.UserID).Msg("User logged out")
	return nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	return s.profiles.GetProfile(ctx, userID)
}
