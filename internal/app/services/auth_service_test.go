package services

import (
	"encoding/json"

	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
	"github.com/yigit/campusnet/internal/pkg/auth"
)

func (s *ServiceSuite) TestSignupHidesPassword() {
	resp, err := s.svc.Auth.Signup(s.ctx, &dto.SignupRequest{
		Username:  "john_doe",
		Email:     "John@Example.com",
		Password:  "strongpw123",
		IsStudent: true,
	})
	s.Require().NoError(err)
	s.Equal("john_doe", resp.Username)
	s.Equal("john@example.com", resp.Email)
	s.True(resp.IsStudent)
	s.Nil(resp.ProfilePicture)

	body, err := json.Marshal(resp)
	s.Require().NoError(err)
	s.NotContains(string(body), "password")
	s.NotContains(string(body), "strongpw123")

	stored, err := s.repos.Users.GetByUsername(s.ctx, "john_doe")
	s.Require().NoError(err)
	s.NotEqual("strongpw123", stored.Password)
	s.True(auth.CheckPassword(stored.Password, "strongpw123"))
}

func (s *ServiceSuite) TestSignupDuplicateLeavesNothingBehind() {
	s.signup("john_doe")

	_, err := s.svc.Auth.Signup(s.ctx, &dto.SignupRequest{Username: "john_doe", Email: "other@example.com", Password: "strongpw123"})
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Contains(apperrors.FieldDetails(err), "username")

	_, err = s.svc.Auth.Signup(s.ctx, &dto.SignupRequest{Username: "jane", Email: "JOHN_DOE@example.com", Password: "strongpw123"})
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Contains(apperrors.FieldDetails(err), "email")

	users, err := s.repos.Users.List(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *ServiceSuite) TestSignupValidation() {
	_, err := s.svc.Auth.Signup(s.ctx, &dto.SignupRequest{Username: "bad name!", Email: "not-an-email", Password: "short"})
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	details := apperrors.FieldDetails(err)
	s.Contains(details, "username")
	s.Contains(details, "email")
	s.Contains(details, "password")
}

func (s *ServiceSuite) TestLogin() {
	actor := s.signup("john_doe")

	token, err := s.svc.Auth.Login(s.ctx, &dto.LoginRequest{Username: "john_doe", Password: "strongpw123"})
	s.Require().NoError(err)
	s.Equal("Bearer", token.TokenType)
	s.NotEmpty(token.AccessToken)
	s.Equal(actor.UserID, token.User.ID)

	_, err = s.svc.Auth.Login(s.ctx, &dto.LoginRequest{Email: "JOHN_DOE@example.com", Password: "strongpw123"})
	s.NoError(err)

	_, err = s.svc.Auth.Login(s.ctx, &dto.LoginRequest{Username: "john_doe", Password: "wrong-password"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = s.svc.Auth.Login(s.ctx, &dto.LoginRequest{Username: "nobody", Password: "strongpw123"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLogoutRevokesToken() {
	s.signup("john_doe")
	token, err := s.svc.Auth.Login(s.ctx, &dto.LoginRequest{Username: "john_doe", Password: "strongpw123"})
	s.Require().NoError(err)

	claims, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "campusnet-test"}).ValidateToken(token.AccessToken)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Auth.Logout(s.ctx, claims))
	revoked, err := s.revocations.IsRevoked(s.ctx, claims.TokenID())
	s.Require().NoError(err)
	s.True(revoked)
}

func (s *ServiceSuite) TestMeReturnsProfile() {
	actor := s.signup("john_doe")
	s.addEducation(actor, "BSc Computer Science")

	me, err := s.svc.Auth.Me(s.ctx, actor.UserID)
	s.Require().NoError(err)
	s.Equal("john_doe", me.Username)
	s.Len(me.Educations, 1)
}

func (s *ServiceSuite) TestSignupReportsEveryTakenField() {
	s.signup("john_doe")

	_, err := s.svc.Auth.Signup(s.ctx, &dto.SignupRequest{Username: "john_doe", Email: "john_doe@example.com", Password: "strongpw123"})
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, apperrors.ErrUsernameAlreadyExists)
	s.ErrorIs(err, apperrors.ErrEmailAlreadyExists)
	details := apperrors.FieldDetails(err)
	s.Contains(details, "username")
	s.Contains(details, "email")

	_, err = s.svc.Auth.Signup(s.ctx, &dto.SignupRequest{Username: "someone_else", Email: "john_doe@example.com", Password: "strongpw123"})
	s.ErrorIs(err, apperrors.ErrEmailAlreadyExists)
	s.NotErrorIs(err, apperrors.ErrUsernameAlreadyExists)
}
