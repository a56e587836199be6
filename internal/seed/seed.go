package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// DemoPassword is the password of every demo account
const DemoPassword = "campusnet-demo"

type demoUser struct {
	signup       dto.SignupRequest
	educations   []dto.CreateEducationRequest
	certificates []dto.CreateCertificateRequest
	achievements []dto.CreateAchievementRequest
	posts        []string
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

var demoUsers = []demoUser{
	{
		signup: dto.SignupRequest{
			Username:  "ada_student",
			Email:     "ada@campusnet.example",
			IsStudent: true,
			About:     strPtr("Third year computer engineering student."),
			GitHub:    strPtr("https://github.com/ada-student"),
		},
		educations: []dto.CreateEducationRequest{
			{Degree: "BSc Computer Engineering", Institution: "Campus University", StartYear: 2022, EndYear: intPtr(2026)},
		},
		achievements: []dto.CreateAchievementRequest{
			{Title: "Campus Hackathon Winner", Description: strPtr("First place in the spring hackathon."), Date: strPtr("2024-04-14")},
		},
		posts: []string{"Looking for teammates for the autumn hackathon. Ping me!"},
	},
	{
		signup: dto.SignupRequest{
			Username: "grace_alumni",
			Email:    "grace@campusnet.example",
			IsAlumni: true,
			About:    strPtr("Backend engineer and mentor."),
			LinkedIn: strPtr("https://www.linkedin.com/in/grace-alumni"),
		},
		educations: []dto.CreateEducationRequest{
			{Degree: "BSc Computer Science", Institution: "Campus University", StartYear: 2014, EndYear: intPtr(2018)},
			{Degree: "MSc Distributed Systems", Institution: "Tech Institute", StartYear: 2018, EndYear: intPtr(2020)},
		},
		certificates: []dto.CreateCertificateRequest{
			{Title: "Certified Kubernetes Administrator", IssuedBy: "CNCF", IssueDate: "2021-09-01", CertificateLink: strPtr("https://www.cncf.io/certification/cka/")},
		},
		posts: []string{"Office hours for alumni mentoring are open again this term."},
	},
	{
		signup: dto.SignupRequest{
			Username:  "alan_faculty",
			Email:     "alan@campusnet.example",
			IsFaculty: true,
			About:     strPtr("Lecturer in theory of computation."),
		},
		educations: []dto.CreateEducationRequest{
			{Degree: "PhD Mathematics", Institution: "Campus University", StartYear: 2008, EndYear: intPtr(2012)},
		},
	},
}

// CreateDemoData provisions demo accounts with a few records each.
// Accounts that already exist are left untouched.
func CreateDemoData(ctx context.Context, svc *services.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data...")
	var finalErr error

	for _, u := range demoUsers {
		req := u.signup
		req.Password = DemoPassword

		user, err := svc.Auth.Signup(ctx, &req)
		if errors.Is(err, apperrors.ErrConflict) {
			lgr.Debug().Str("username", req.Username).Msg("Demo user already exists")
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("username", req.Username).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		actor := &authz.Actor{UserID: user.ID, Username: user.Username}
		for i := range u.educations {
			if _, err := svc.Educations.Create(ctx, actor, &u.educations[i]); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
		for i := range u.certificates {
			if _, err := svc.Certificates.Create(ctx, actor, &u.certificates[i], nil); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
		for i := range u.achievements {
			if _, err := svc.Achievements.Create(ctx, actor, &u.achievements[i], nil); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
		for _, content := range u.posts {
			if _, err := svc.Posts.Create(ctx, actor, &dto.CreatePostRequest{Content: content}); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
		lgr.Info().Str("username", user.Username).Msg("Demo user created")
	}

	return finalErr
}
