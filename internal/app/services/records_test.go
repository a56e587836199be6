package services

import (
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

func (s *ServiceSuite) TestEducationCreateDefaultsOwnerToActor() {
	actor := s.signup("john_doe")

	e := s.addEducation(actor, "BSc Computer Science")
	s.Equal(actor.UserID, e.UserID)
	s.Equal(2023, *e.EndYear)
}

func (s *ServiceSuite) TestEducationCreateRules() {
	alice := s.signup("alice")
	bob := s.signup("bob")

	_, err := s.svc.Educations.Create(s.ctx, nil, &dto.CreateEducationRequest{Degree: "BSc", Institution: "U", StartYear: 2020})
	s.ErrorIs(err, apperrors.ErrUnauthenticated)

	_, err = s.svc.Educations.Create(s.ctx, alice, &dto.CreateEducationRequest{UserID: &bob.UserID, Degree: "BSc", Institution: "U", StartYear: 2020})
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	missing := int64(999)
	_, err = s.svc.Educations.Create(s.ctx, alice, &dto.CreateEducationRequest{UserID: &missing, Degree: "BSc", Institution: "U", StartYear: 2020})
	s.ErrorIs(err, apperrors.ErrResourceNotFound)

	_, err = s.svc.Educations.Create(s.ctx, alice, &dto.CreateEducationRequest{Degree: "BSc", Institution: "U", StartYear: 2020, EndYear: intPtr(2018)})
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "end_year")

	_, err = s.svc.Educations.Create(s.ctx, alice, &dto.CreateEducationRequest{Degree: "BSc", Institution: "U", StartYear: 2024, EndYear: intPtr(2030)})
	s.NoError(err)
}

func (s *ServiceSuite) TestEducationUpdateByOtherUserForbidden() {
	alice := s.signup("alice")
	bob := s.signup("bob")
	e := s.addEducation(bob, "BSc")

	_, err := s.svc.Educations.Update(s.ctx, alice, e.ID, &dto.UpdateEducationRequest{Degree: strPtr("PhD")}, true)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	stored, err := s.svc.Educations.Get(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal("BSc", stored.Degree)

	err = s.svc.Educations.Delete(s.ctx, alice, e.ID)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *ServiceSuite) TestEducationFullAndPartialUpdate() {
	actor := s.signup("john_doe")
	e := s.addEducation(actor, "BSc")

	_, err := s.svc.Educations.Update(s.ctx, actor, e.ID, &dto.UpdateEducationRequest{Degree: strPtr("MSc")}, false)
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "institution")
	s.Contains(apperrors.FieldDetails(err), "start_year")

	updated, err := s.svc.Educations.Update(s.ctx, actor, e.ID, &dto.UpdateEducationRequest{Degree: strPtr("MSc")}, true)
	s.Require().NoError(err)
	s.Equal("MSc", updated.Degree)
	s.Equal("Campus University", updated.Institution)
	s.Require().NotNil(updated.EndYear)

	updated, err = s.svc.Educations.Update(s.ctx, actor, e.ID, &dto.UpdateEducationRequest{
		Degree:      strPtr("MSc"),
		Institution: strPtr("Other University"),
		StartYear:   intPtr(2023),
	}, false)
	s.Require().NoError(err)
	s.Nil(updated.EndYear)
}

func (s *ServiceSuite) TestEducationListFilterAndDelete() {
	alice := s.signup("alice")
	bob := s.signup("bob")
	first := s.addEducation(alice, "BSc")
	s.addEducation(bob, "BA")
	s.addEducation(alice, "MSc")

	all, err := s.svc.Educations.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(all, 3)

	mine, err := s.svc.Educations.List(s.ctx, &alice.UserID)
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal("BSc", mine[0].Degree)
	s.Equal("MSc", mine[1].Degree)

	s.Require().NoError(s.svc.Educations.Delete(s.ctx, alice, first.ID))
	_, err = s.svc.Educations.Get(s.ctx, first.ID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *ServiceSuite) TestCertificateLifecycle() {
	actor := s.signup("john_doe")

	_, err := s.svc.Certificates.Create(s.ctx, actor, &dto.CreateCertificateRequest{Title: "T", IssuedBy: "I", IssueDate: "01/06/2024"}, nil)
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "issue_date")

	c := s.addCertificate(actor, uploadFile(s.T(), "image", "cert.png"))
	s.Equal("2024-06-01", c.IssueDate)
	s.Require().NotNil(c.Image)
	oldImage := *c.Image

	updated, err := s.svc.Certificates.Update(s.ctx, actor, c.ID, &dto.UpdateCertificateRequest{
		CertificateLink: strPtr("https://example.com/cert"),
	}, true, uploadFile(s.T(), "image", "cert2.png"))
	s.Require().NoError(err)
	s.Equal("https://example.com/cert", *updated.CertificateLink)
	s.NotEqual(oldImage, *updated.Image)
	s.Contains(s.storage.deleted, oldImage)

	s.Require().NoError(s.svc.Certificates.Delete(s.ctx, actor, c.ID))
	s.Equal(0, s.storage.live())
}

func (s *ServiceSuite) TestCertificateRejectsNonImage() {
	actor := s.signup("john_doe")

	_, err := s.svc.Certificates.Create(s.ctx, actor, &dto.CreateCertificateRequest{Title: "T", IssuedBy: "I", IssueDate: "2024-06-01"}, uploadFile(s.T(), "image", "cert.exe"))
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "image")

	list, err := s.svc.Certificates.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *ServiceSuite) TestAchievementOptionalDate() {
	actor := s.signup("john_doe")

	a, err := s.svc.Achievements.Create(s.ctx, actor, &dto.CreateAchievementRequest{Title: "Hackathon winner"}, nil)
	s.Require().NoError(err)
	s.Nil(a.Date)
	s.Nil(a.Image)

	updated, err := s.svc.Achievements.Update(s.ctx, actor, a.ID, &dto.UpdateAchievementRequest{Date: strPtr("2024-05-20")}, true, nil)
	s.Require().NoError(err)
	s.Equal("2024-05-20", *updated.Date)
	s.Equal("Hackathon winner", updated.Title)

	updated, err = s.svc.Achievements.Update(s.ctx, actor, a.ID, &dto.UpdateAchievementRequest{Title: strPtr("Finalist")}, false, nil)
	s.Require().NoError(err)
	s.Nil(updated.Date)

	_, err = s.svc.Achievements.Update(s.ctx, actor, a.ID, &dto.UpdateAchievementRequest{}, false, nil)
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "title")
}

func (s *ServiceSuite) TestResumeOnePerUser() {
	actor := s.signup("john_doe")

	_, err := s.svc.Resumes.Create(s.ctx, actor, &dto.CreateResumeRequest{}, nil)
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "file")

	r := s.addResume(actor)
	s.Equal(actor.UserID, r.UserID)

	_, err = s.svc.Resumes.Create(s.ctx, actor, &dto.CreateResumeRequest{}, uploadFile(s.T(), "file", "cv2.pdf"))
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, apperrors.ErrResumeAlreadyExists)
	s.Equal(1, s.storage.live())
}

func (s *ServiceSuite) TestResumeReplaceKeepsUploadedAt() {
	actor := s.signup("john_doe")
	r := s.addResume(actor)

	same, err := s.svc.Resumes.Update(s.ctx, actor, r.ID, true, nil)
	s.Require().NoError(err)
	s.Equal(r.File, same.File)

	_, err = s.svc.Resumes.Update(s.ctx, actor, r.ID, false, nil)
	s.ErrorIs(err, apperrors.ErrValidationFailed)

	replaced, err := s.svc.Resumes.Update(s.ctx, actor, r.ID, false, uploadFile(s.T(), "file", "cv-2024.docx"))
	s.Require().NoError(err)
	s.NotEqual(r.File, replaced.File)
	s.True(r.UploadedAt.Equal(replaced.UploadedAt))
	s.Contains(s.storage.deleted, r.File)

	other := s.signup("other")
	err = s.svc.Resumes.Delete(s.ctx, other, r.ID)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)

	s.Require().NoError(s.svc.Resumes.Delete(s.ctx, actor, r.ID))
	s.Equal(0, s.storage.live())
}

func (s *ServiceSuite) TestProfileAggregation() {
	actor := s.signup("john_doe")
	s.addEducation(actor, "BSc")
	s.addEducation(actor, "MSc")
	s.addCertificate(actor, nil)
	s.addResume(actor)

	profile, err := s.svc.Users.GetUser(s.ctx, actor.UserID)
	s.Require().NoError(err)
	s.Len(profile.Educations, 2)
	s.Len(profile.Certificates, 1)
	s.NotNil(profile.Achievements)
	s.Empty(profile.Achievements)
	s.Require().NotNil(profile.Resume)
	s.Equal(actor.UserID, profile.Resume.UserID)

	profiles, err := s.svc.Profiles.ListProfiles(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(profiles, 1)
	s.Len(profiles[0].Educations, 2)
}

func (s *ServiceSuite) TestAnonymousReads() {
	actor := s.signup("john_doe")
	e := s.addEducation(actor, "BSc")

	list, err := s.svc.Educations.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(list, 1)

	got, err := s.svc.Educations.Get(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(e.ID, got.ID)
}

func (s *ServiceSuite) TestRecordUpdatesByOtherUserForbidden() {
	owner := s.signup("owner")
	other := s.signup("other")

	c := s.addCertificate(owner, nil)
	_, err := s.svc.Certificates.Update(s.ctx, other, c.ID, &dto.UpdateCertificateRequest{Title: strPtr("Stolen")}, true, nil)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
	storedCert, err := s.svc.Certificates.Get(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Cloud Practitioner", storedCert.Title)

	a, err := s.svc.Achievements.Create(s.ctx, owner, &dto.CreateAchievementRequest{Title: "Winner"}, nil)
	s.Require().NoError(err)
	_, err = s.svc.Achievements.Update(s.ctx, other, a.ID, &dto.UpdateAchievementRequest{Title: strPtr("Stolen")}, true, nil)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
	_, err = s.svc.Achievements.Update(s.ctx, nil, a.ID, &dto.UpdateAchievementRequest{Title: strPtr("Stolen")}, true, nil)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
	storedAch, err := s.svc.Achievements.Get(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("Winner", storedAch.Title)

	r := s.addResume(owner)
	_, err = s.svc.Resumes.Update(s.ctx, other, r.ID, false, uploadFile(s.T(), "file", "fake.pdf"))
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
	storedResume, err := s.svc.Resumes.Get(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(r.File, storedResume.File)
	s.Equal(1, s.storage.live())
}

func (s *ServiceSuite) TestPatchWithoutFieldKeepsOptionalValues() {
	actor := s.signup("john_doe")

	e := s.addEducation(actor, "BSc")
	updated, err := s.svc.Educations.Update(s.ctx, actor, e.ID, &dto.UpdateEducationRequest{EndYear: nil}, true)
	s.Require().NoError(err)
	s.Require().NotNil(updated.EndYear)
	s.Equal(2023, *updated.EndYear)

	c := s.addCertificate(actor, nil)
	cert, err := s.svc.Certificates.Update(s.ctx, actor, c.ID, &dto.UpdateCertificateRequest{CertificateLink: strPtr("https://example.com/c")}, true, nil)
	s.Require().NoError(err)
	s.Require().NotNil(cert.CertificateLink)

	cert, err = s.svc.Certificates.Update(s.ctx, actor, c.ID, &dto.UpdateCertificateRequest{}, true, nil)
	s.Require().NoError(err)
	s.Require().NotNil(cert.CertificateLink)

	cert, err = s.svc.Certificates.Update(s.ctx, actor, c.ID, &dto.UpdateCertificateRequest{CertificateLink: strPtr("")}, true, nil)
	s.Require().NoError(err)
	s.Nil(cert.CertificateLink)

	a, err := s.svc.Achievements.Create(s.ctx, actor, &dto.CreateAchievementRequest{Title: "Winner", Date: strPtr("2024-05-20")}, nil)
	s.Require().NoError(err)
	ach, err := s.svc.Achievements.Update(s.ctx, actor, a.ID, &dto.UpdateAchievementRequest{}, true, nil)
	s.Require().NoError(err)
	s.Require().NotNil(ach.Date)

	ach, err = s.svc.Achievements.Update(s.ctx, actor, a.ID, &dto.UpdateAchievementRequest{Date: strPtr("")}, true, nil)
	s.Require().NoError(err)
	s.Nil(ach.Date)
}
