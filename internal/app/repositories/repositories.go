package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/db"
)

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks github.com/yigit/campusnet/internal/app/repositories UserRepository,EducationRepository,CertificateRepository,AchievementRepository,ResumeRepository,PostRepository,CommentRepository,ConnectionRepository

// UserRepository defines the identity store
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Search(ctx context.Context, query models.UserQuery) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// EducationRepository stores education records
type EducationRepository interface {
	Create(ctx context.Context, education *models.Education) error
	GetByID(ctx context.Context, id int64) (*models.Education, error)
	List(ctx context.Context, userID *int64) ([]*models.Education, error)
	Update(ctx context.Context, education *models.Education) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// CertificateRepository stores certificates
type CertificateRepository interface {
	Create(ctx context.Context, certificate *models.Certificate) error
	GetByID(ctx context.Context, id int64) (*models.Certificate, error)
	List(ctx context.Context, userID *int64) ([]*models.Certificate, error)
	Update(ctx context.Context, certificate *models.Certificate) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// AchievementRepository stores achievements
type AchievementRepository interface {
	Create(ctx context.Context, achievement *models.Achievement) error
	GetByID(ctx context.Context, id int64) (*models.Achievement, error)
	List(ctx context.Context, userID *int64) ([]*models.Achievement, error)
	Update(ctx context.Context, achievement *models.Achievement) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// ResumeRepository stores resumes. A user has at most one.
type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	GetByID(ctx context.Context, id int64) (*models.Resume, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Resume, error)
	List(ctx context.Context, userID *int64) ([]*models.Resume, error)
	Update(ctx context.Context, resume *models.Resume) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// PostRepository stores feed posts together with their likes.
// Deleting a post removes its comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
	// ToggleLike adds userID's like, or removes it if present, and reports
	// whether the post is liked afterwards.
	ToggleLike(ctx context.Context, postID, userID int64) (bool, error)
	DeleteLikesByUserID(ctx context.Context, userID int64) error
}

// CommentRepository stores comments on posts
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
	ToggleLike(ctx context.Context, commentID, userID int64) (bool, error)
	DeleteLikesByUserID(ctx context.Context, userID int64) error
}

// ConnectionRepository stores connections and pending requests between users
type ConnectionRepository interface {
	Create(ctx context.Context, connection *models.Connection) error
	// GetBetween finds the connection of a pair in either direction
	GetBetween(ctx context.Context, userA, userB int64) (*models.Connection, error)
	List(ctx context.Context, userID int64, status models.ConnectionStatus) ([]*models.Connection, error)
	ListIncoming(ctx context.Context, userID int64) ([]*models.Connection, error)
	Accept(ctx context.Context, connection *models.Connection) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// TxFn runs against repositories bound to a single transaction
type TxFn func(ctx context.Context, repos *Repositories) error

// Transactor runs a TxFn atomically
type Transactor interface {
	WithTransaction(ctx context.Context, fn TxFn) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Users        UserRepository
	Educations   EducationRepository
	Certificates CertificateRepository
	Achievements AchievementRepository
	Resumes      ResumeRepository
	Posts        PostRepository
	Comments     CommentRepository
	Connections  ConnectionRepository
	Transactor   Transactor
}

// WithTransaction runs fn atomically. Without a transactor fn runs directly.
func (r *Repositories) WithTransaction(ctx context.Context, fn TxFn) error {
	if r.Transactor == nil {
		return fn(ctx, r)
	}
	return r.Transactor.WithTransaction(ctx, fn)
}

// NewRepositories initializes the Postgres-backed repositories
func NewRepositories(pg *db.PostgresDB) *Repositories {
	repos := newPostgresRepositories(pg.Pool)
	repos.Transactor = &pgTransactor{db: pg}
	return repos
}

func newPostgresRepositories(conn DBTX) *Repositories {
	return &Repositories{
		Users:        NewPostgresUserRepository(conn),
		Educations:   NewPostgresEducationRepository(conn),
		Certificates: NewPostgresCertificateRepository(conn),
		Achievements: NewPostgresAchievementRepository(conn),
		Resumes:      NewPostgresResumeRepository(conn),
		Posts:        NewPostgresPostRepository(conn),
		Comments:     NewPostgresCommentRepository(conn),
		Connections:  NewPostgresConnectionRepository(conn),
	}
}

type pgTransactor struct {
	db *db.PostgresDB
}

func (t *pgTransactor) WithTransaction(ctx context.Context, fn TxFn) error {
	return t.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// repositories bound to tx run fn without nesting another transaction
		return fn(ctx, newPostgresRepositories(tx))
	})
}
