// Package memory implements the repositories on in-process maps. It backs the
// "memory" database driver and the service tests.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

type state struct {
	nextID       int64
	users        map[int64]models.User
	educations   map[int64]models.Education
	certificates map[int64]models.Certificate
	achievements map[int64]models.Achievement
	resumes      map[int64]models.Resume
	posts        map[int64]models.Post
	comments     map[int64]models.Comment
	postLikes    map[like]struct{}
	commentLikes map[like]struct{}
	connections  map[int64]models.Connection
}

// like is one user's like on a post or comment
type like struct {
	targetID int64
	userID   int64
}

func newState() *state {
	return &state{
		users:        map[int64]models.User{},
		educations:   map[int64]models.Education{},
		certificates: map[int64]models.Certificate{},
		achievements: map[int64]models.Achievement{},
		resumes:      map[int64]models.Resume{},
		posts:        map[int64]models.Post{},
		comments:     map[int64]models.Comment{},
		postLikes:    map[like]struct{}{},
		commentLikes: map[like]struct{}{},
		connections:  map[int64]models.Connection{},
	}
}

func (s *state) clone() *state {
	return &state{
		nextID:       s.nextID,
		users:        maps.Clone(s.users),
		educations:   maps.Clone(s.educations),
		certificates: maps.Clone(s.certificates),
		achievements: maps.Clone(s.achievements),
		resumes:      maps.Clone(s.resumes),
		posts:        maps.Clone(s.posts),
		comments:     maps.Clone(s.comments),
		postLikes:    maps.Clone(s.postLikes),
		commentLikes: maps.Clone(s.commentLikes),
		connections:  maps.Clone(s.connections),
	}
}

// Store is the shared in-memory state behind every repository.
// Writes are serialised by mu. A transaction holds mu for its whole run and
// works on a private copy that replaces data only on commit.
type Store struct {
	mu   sync.RWMutex
	data *state
	now  func() time.Time
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

// NewRepositories returns repositories backed by a fresh Store
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories returns repositories backed by s
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:        &UserRepository{store: s},
		Educations:   &EducationRepository{store: s},
		Certificates: &CertificateRepository{store: s},
		Achievements: &AchievementRepository{store: s},
		Resumes:      &ResumeRepository{store: s},
		Posts:        &PostRepository{store: s},
		Comments:     &CommentRepository{store: s},
		Connections:  &ConnectionRepository{store: s},
		Transactor:   s,
	}
}

// WithTransaction implements repositories.Transactor. Other callers block
// until it returns, so fn must only use the repositories it is given.
func (s *Store) WithTransaction(ctx context.Context, fn repositories.TxFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{data: s.data.clone(), now: s.now}
	repos := tx.Repositories()
	repos.Transactor = nil

	if err := fn(ctx, repos); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

func (s *Store) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

func notFound(entity string) error {
	return apperrors.NewResourceNotFoundError(entity + " not found")
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
