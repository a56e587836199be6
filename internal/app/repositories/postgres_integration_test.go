//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/yigit/campusnet/internal/app/migrations"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/db"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     *repositories.Repositories
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("campusnet_test"),
		tcpostgres.WithUsername("campusnet"),
		tcpostgres.WithPassword("campusnet"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := pgxpool.New(s.ctx, connStr)
	s.Require().NoError(err)
	s.pool = pool

	s.Require().NoError(migrations.NewMigrator(pool).Up(s.ctx))
	s.repos = repositories.NewRepositories(&db.PostgresDB{Pool: pool})
}

func (s *PostgresSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE comment_likes, comments, post_likes, posts, connections, resumes, achievements, certificates, educations, users RESTART IDENTITY")
	s.Require().NoError(err)
}

func (s *PostgresSuite) createUser(username string) *models.User {
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash", IsStudent: true}
	s.Require().NoError(s.repos.Users.Create(s.ctx, u))
	return u
}

func (s *PostgresSuite) TestUserConstraints() {
	u := s.createUser("john_doe")
	s.NotZero(u.ID)
	s.False(u.CreatedAt.IsZero())

	err := s.repos.Users.Create(s.ctx, &models.User{Username: "john_doe", Email: "x@example.com", Password: "h"})
	s.ErrorIs(err, apperrors.ErrUsernameAlreadyExists)

	err = s.repos.Users.Create(s.ctx, &models.User{Username: "jane", Email: "john_doe@example.com", Password: "h"})
	s.ErrorIs(err, apperrors.ErrEmailAlreadyExists)

	got, err := s.repos.Users.GetByUsername(s.ctx, "john_doe")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.True(got.IsStudent)

	_, err = s.repos.Users.GetByID(s.ctx, 9999)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *PostgresSuite) TestDependentRecords() {
	u := s.createUser("alice")
	end := 2024
	edu := &models.Education{UserID: u.ID, Degree: "BSc", Institution: "MIT", StartYear: 2020, EndYear: &end}
	s.Require().NoError(s.repos.Educations.Create(s.ctx, edu))

	cert := &models.Certificate{UserID: u.ID, Title: "CKA", IssuedBy: "CNCF", IssueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	s.Require().NoError(s.repos.Certificates.Create(s.ctx, cert))

	err := s.repos.Achievements.Create(s.ctx, &models.Achievement{UserID: 404, Title: "ghost"})
	s.ErrorIs(err, apperrors.ErrResourceNotFound)

	list, err := s.repos.Educations.List(s.ctx, &u.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(2024, *list[0].EndYear)

	gotCert, err := s.repos.Certificates.GetByID(s.ctx, cert.ID)
	s.Require().NoError(err)
	s.Equal("2024-06-01", gotCert.IssueDate.Format(models.DateLayout))
}

func (s *PostgresSuite) TestResumeUniqueAndUploadedAtStable() {
	u := s.createUser("alice")
	res := &models.Resume{UserID: u.ID, File: "resumes/a.pdf"}
	s.Require().NoError(s.repos.Resumes.Create(s.ctx, res))

	err := s.repos.Resumes.Create(s.ctx, &models.Resume{UserID: u.ID, File: "resumes/b.pdf"})
	s.ErrorIs(err, apperrors.ErrResumeAlreadyExists)

	res.File = "resumes/c.pdf"
	s.Require().NoError(s.repos.Resumes.Update(s.ctx, res))
	got, err := s.repos.Resumes.GetByUserID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("resumes/c.pdf", got.File)
	s.WithinDuration(res.UploadedAt, got.UploadedAt, time.Microsecond)
}

func (s *PostgresSuite) TestRestrictAndTransactionalCascade() {
	u := s.createUser("alice")
	s.Require().NoError(s.repos.Achievements.Create(s.ctx, &models.Achievement{UserID: u.ID, Title: "Hackathon"}))

	err := s.repos.Users.Delete(s.ctx, u.ID)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.NotErrorIs(err, apperrors.ErrResourceNotFound)

	err = s.repos.WithTransaction(s.ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		if err := tx.Achievements.DeleteByUserID(ctx, u.ID); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, u.ID)
	})
	s.Require().NoError(err)

	exists, err := s.repos.Users.Exists(s.ctx, u.ID)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *PostgresSuite) TestUserSearch() {
	alice := s.createUser("alice")
	s.createUser("Alicia")
	s.createUser("bob_100%")

	found, err := s.repos.Users.Search(s.ctx, models.UserQuery{Term: "ALI"})
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal("Alicia", found[0].Username)

	found, err = s.repos.Users.Search(s.ctx, models.UserQuery{Term: "ali", ExcludeID: &alice.ID})
	s.Require().NoError(err)
	s.Len(found, 1)

	found, err = s.repos.Users.Search(s.ctx, models.UserQuery{Term: "100%"})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("bob_100%", found[0].Username)

	found, err = s.repos.Users.Search(s.ctx, models.UserQuery{Term: "%"})
	s.Require().NoError(err)
	s.Len(found, 1)

	found, err = s.repos.Users.Search(s.ctx, models.UserQuery{Limit: 2})
	s.Require().NoError(err)
	s.Len(found, 2)
}

func (s *PostgresSuite) TestPostsCommentsAndLikes() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	post := &models.Post{UserID: alice.ID, Content: "hello"}
	s.Require().NoError(s.repos.Posts.Create(s.ctx, post))
	s.NotZero(post.ID)

	liked, err := s.repos.Posts.ToggleLike(s.ctx, post.ID, bob.ID)
	s.Require().NoError(err)
	s.True(liked)
	_, err = s.repos.Posts.ToggleLike(s.ctx, 9999, bob.ID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)

	comment := &models.Comment{PostID: post.ID, UserID: bob.ID, Content: "nice"}
	s.Require().NoError(s.repos.Comments.Create(s.ctx, comment))
	_, err = s.repos.Comments.ToggleLike(s.ctx, comment.ID, alice.ID)
	s.Require().NoError(err)

	err = s.repos.Comments.Create(s.ctx, &models.Comment{PostID: 9999, UserID: bob.ID, Content: "lost"})
	s.ErrorIs(err, apperrors.ErrResourceNotFound)

	got, err := s.repos.Posts.GetByID(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal([]int64{bob.ID}, got.Likes)
	s.Equal(1, got.CommentCount)

	liked, err = s.repos.Posts.ToggleLike(s.ctx, post.ID, bob.ID)
	s.Require().NoError(err)
	s.False(liked)

	s.Require().NoError(s.repos.Posts.Delete(s.ctx, post.ID))
	_, err = s.repos.Comments.GetByID(s.ctx, comment.ID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *PostgresSuite) TestConnectionPairIsUnique() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	c := &models.Connection{RequesterID: alice.ID, AddresseeID: bob.ID, Status: models.ConnectionPending}
	s.Require().NoError(s.repos.Connections.Create(s.ctx, c))

	err := s.repos.Connections.Create(s.ctx, &models.Connection{RequesterID: bob.ID, AddresseeID: alice.ID, Status: models.ConnectionPending})
	s.ErrorIs(err, apperrors.ErrConflict)

	got, err := s.repos.Connections.GetBetween(s.ctx, bob.ID, alice.ID)
	s.Require().NoError(err)
	s.Equal(c.ID, got.ID)

	s.Require().NoError(s.repos.Connections.Accept(s.ctx, got))
	s.NotNil(got.AcceptedAt)
	s.ErrorIs(s.repos.Connections.Accept(s.ctx, got), apperrors.ErrResourceNotFound)

	accepted, err := s.repos.Connections.List(s.ctx, bob.ID, models.ConnectionAccepted)
	s.Require().NoError(err)
	s.Len(accepted, 1)

	err = s.repos.Users.Delete(s.ctx, alice.ID)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Require().NoError(s.repos.Connections.DeleteByUserID(s.ctx, alice.ID))
	s.Require().NoError(s.repos.Users.Delete(s.ctx, alice.ID))
}
