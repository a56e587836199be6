package services

import (
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

func (s *ServiceSuite) TestListUsersAnonymous() {
	s.signup("alice")
	s.signup("bob")

	users, err := s.svc.Users.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("alice", users[0].Username)
	s.Equal("bob", users[1].Username)
	s.NotNil(users[0].Educations)
	s.Nil(users[0].Resume)
}

func (s *ServiceSuite) TestGetUserNotFound() {
	_, err := s.svc.Users.GetUser(s.ctx, 999)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *ServiceSuite) TestPartialUpdateOwnAccount() {
	actor := s.signup("john_doe")

	profile, err := s.svc.Users.UpdateUser(s.ctx, actor, actor.UserID, &dto.UpdateUserRequest{
		About:    strPtr("Backend developer"),
		IsAlumni: boolPtr(true),
	}, true, nil)
	s.Require().NoError(err)
	s.Equal("Backend developer", *profile.About)
	s.True(profile.IsAlumni)
	s.True(profile.IsStudent)
	s.Equal("john_doe@example.com", profile.Email)
}

func (s *ServiceSuite) TestUpdateOtherUserForbidden() {
	alice := s.signup("alice")
	bob := s.signup("bob")

	_, err := s.svc.Users.UpdateUser(s.ctx, alice, bob.UserID, &dto.UpdateUserRequest{About: strPtr("hacked")}, true, nil)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	_, err = s.svc.Users.UpdateUser(s.ctx, nil, bob.UserID, &dto.UpdateUserRequest{About: strPtr("hacked")}, true, nil)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)

	stored, err := s.repos.Users.GetByID(s.ctx, bob.UserID)
	s.Require().NoError(err)
	s.Nil(stored.About)
}

func (s *ServiceSuite) TestUsernameIsImmutable() {
	actor := s.signup("john_doe")

	_, err := s.svc.Users.UpdateUser(s.ctx, actor, actor.UserID, &dto.UpdateUserRequest{Username: strPtr("johnny")}, true, nil)
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "username")

	_, err = s.svc.Users.UpdateUser(s.ctx, actor, actor.UserID, &dto.UpdateUserRequest{Username: strPtr("john_doe")}, true, nil)
	s.NoError(err)
}

func (s *ServiceSuite) TestFullUpdateRequiresFields() {
	actor := s.signup("john_doe")

	_, err := s.svc.Users.UpdateUser(s.ctx, actor, actor.UserID, &dto.UpdateUserRequest{About: strPtr("x")}, false, nil)
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	details := apperrors.FieldDetails(err)
	s.Contains(details, "username")
	s.Contains(details, "email")

	profile, err := s.svc.Users.UpdateUser(s.ctx, actor, actor.UserID, &dto.UpdateUserRequest{
		Username: strPtr("john_doe"),
		Email:    strPtr("new@example.com"),
	}, false, nil)
	s.Require().NoError(err)
	s.Equal("new@example.com", profile.Email)
}

func (s *ServiceSuite) TestUpdateEmailConflict() {
	alice := s.signup("alice")
	s.signup("bob")

	_, err := s.svc.Users.UpdateUser(s.ctx, alice, alice.UserID, &dto.UpdateUserRequest{Email: strPtr("bob@example.com")}, true, nil)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ServiceSuite) TestProfilePictureReplacement() {
	actor := s.signup("john_doe")

	first, err := s.svc.Users.UpdateUser(s.ctx, actor, actor.UserID, &dto.UpdateUserRequest{}, true, uploadFile(s.T(), "profile_picture", "me.png"))
	s.Require().NoError(err)
	s.Require().NotNil(first.ProfilePicture)

	second, err := s.svc.Users.UpdateUser(s.ctx, actor, actor.UserID, &dto.UpdateUserRequest{}, true, uploadFile(s.T(), "profile_picture", "me2.jpg"))
	s.Require().NoError(err)
	s.NotEqual(*first.ProfilePicture, *second.ProfilePicture)
	s.Contains(s.storage.deleted, *first.ProfilePicture)
	s.Equal(1, s.storage.live())

	_, err = s.svc.Users.UpdateUser(s.ctx, actor, actor.UserID, &dto.UpdateUserRequest{}, true, uploadFile(s.T(), "profile_picture", "notes.txt"))
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "profile_picture")
}

func (s *ServiceSuite) TestDeleteUserCascades() {
	alice := s.signup("alice")
	bob := s.signup("bob")
	s.addEducation(alice, "BSc")
	s.addCertificate(alice, uploadFile(s.T(), "image", "cert.png"))
	s.addResume(alice)
	s.addEducation(bob, "MSc")

	err := s.svc.Users.DeleteUser(s.ctx, bob, alice.UserID)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	s.Require().NoError(s.svc.Users.DeleteUser(s.ctx, alice, alice.UserID))

	_, err = s.repos.Users.GetByID(s.ctx, alice.UserID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)

	educations, err := s.repos.Educations.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(educations, 1)
	s.Equal(bob.UserID, educations[0].UserID)

	certificates, err := s.repos.Certificates.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(certificates)

	resumes, err := s.repos.Resumes.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(resumes)

	s.Equal(0, s.storage.live())
}
