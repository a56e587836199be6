package memory

import (
	"context"
	"strings"

	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// UserRepository is the in-memory identity store
type UserRepository struct {
	store *Store
}

func (r *UserRepository) checkUnique(user *models.User) error {
	for id, existing := range r.store.data.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return apperrors.NewConflictError("username", apperrors.ErrUsernameAlreadyExists)
		}
		if existing.Email == user.Email {
			return apperrors.NewConflictError("email", apperrors.ErrEmailAlreadyExists)
		}
	}
	return nil
}

// Create inserts a user and fills in its id and timestamps
func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkUnique(user); err != nil {
		return err
	}
	user.ID = r.store.id()
	user.CreatedAt = r.store.now()
	user.UpdatedAt = user.CreatedAt
	r.store.data.users[user.ID] = *user
	return nil
}

func (r *UserRepository) find(match func(models.User) bool) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range sortedKeys(r.store.data.users) {
		u := r.store.data.users[id]
		if match(u) {
			return &u, nil
		}
	}
	return nil, notFound("user")
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

// List retrieves all users in insertion order
func (r *UserRepository) List(_ context.Context) ([]*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]*models.User, 0, len(r.store.data.users))
	for _, id := range sortedKeys(r.store.data.users) {
		u := r.store.data.users[id]
		users = append(users, &u)
	}
	return users, nil
}

// Search finds users whose username or email contains the term, newest first
func (r *UserRepository) Search(_ context.Context, query models.UserQuery) ([]*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	term := strings.ToLower(query.Term)
	keys := sortedKeys(r.store.data.users)
	users := []*models.User{}
	for i := len(keys) - 1; i >= 0; i-- {
		u := r.store.data.users[keys[i]]
		if query.ExcludeID != nil && u.ID == *query.ExcludeID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(u.Username), term) && !strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		users = append(users, &u)
		if query.Limit > 0 && uint64(len(users)) == query.Limit {
			break
		}
	}
	return users, nil
}

// Update persists the mutable fields of a user
func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.data.users[user.ID]
	if !ok {
		return notFound("user")
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	updated := *user
	updated.Username = existing.Username
	updated.Password = existing.Password
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = r.store.now()
	r.store.data.users[user.ID] = updated
	user.UpdatedAt = updated.UpdatedAt
	return nil
}

// Delete removes a user. Like the RESTRICT foreign keys, it refuses while
// dependent records remain.
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.users[id]; !ok {
		return notFound("user")
	}
	if r.store.hasDependents(id) {
		return apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrUserHasRecords.Error())
	}
	delete(r.store.data.users, id)
	return nil
}

// Exists reports whether a user with id exists
func (r *UserRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.data.users[id]
	return ok, nil
}

func (s *Store) hasDependents(userID int64) bool {
	for _, e := range s.data.educations {
		if e.UserID == userID {
			return true
		}
	}
	for _, c := range s.data.certificates {
		if c.UserID == userID {
			return true
		}
	}
	for _, a := range s.data.achievements {
		if a.UserID == userID {
			return true
		}
	}
	for _, res := range s.data.resumes {
		if res.UserID == userID {
			return true
		}
	}
	for _, p := range s.data.posts {
		if p.UserID == userID {
			return true
		}
	}
	for _, c := range s.data.comments {
		if c.UserID == userID {
			return true
		}
	}
	for l := range s.data.postLikes {
		if l.userID == userID {
			return true
		}
	}
	for l := range s.data.commentLikes {
		if l.userID == userID {
			return true
		}
	}
	for _, c := range s.data.connections {
		if c.Involves(userID) {
			return true
		}
	}
	return false
}
