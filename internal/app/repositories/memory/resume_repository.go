package memory

import (
	"context"

	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

func resumeOwner(r models.Resume) int64 { return r.UserID }

// ResumeRepository is the in-memory resume store
type ResumeRepository struct {
	store *Store
}

// Create inserts a resume. A second resume for the same user is a conflict.
func (r *ResumeRepository) Create(_ context.Context, resume *models.Resume) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.users[resume.UserID]; !ok {
		return notFound("user")
	}
	for _, existing := range r.store.data.resumes {
		if existing.UserID == resume.UserID {
			return apperrors.NewConflictError("user", apperrors.ErrResumeAlreadyExists)
		}
	}
	resume.ID = r.store.id()
	resume.UploadedAt = r.store.now()
	r.store.data.resumes[resume.ID] = *resume
	return nil
}

// GetByID retrieves a resume by ID
func (r *ResumeRepository) GetByID(_ context.Context, id int64) (*models.Resume, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res, ok := r.store.data.resumes[id]
	if !ok {
		return nil, notFound("resume")
	}
	return &res, nil
}

// GetByUserID retrieves the resume of a user
func (r *ResumeRepository) GetByUserID(_ context.Context, userID int64) (*models.Resume, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, res := range r.store.data.resumes {
		if res.UserID == userID {
			return &res, nil
		}
	}
	return nil, notFound("resume")
}

// List retrieves resumes, optionally only the one of a single user
func (r *ResumeRepository) List(_ context.Context, userID *int64) ([]*models.Resume, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listOwned(r.store.data.resumes, userID, resumeOwner), nil
}

// Update replaces the resume file; owner and upload time never change
func (r *ResumeRepository) Update(_ context.Context, resume *models.Resume) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.data.resumes[resume.ID]
	if !ok {
		return notFound("resume")
	}
	existing.File = resume.File
	r.store.data.resumes[resume.ID] = existing
	return nil
}

// Delete removes a resume
func (r *ResumeRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.resumes[id]; !ok {
		return notFound("resume")
	}
	delete(r.store.data.resumes, id)
	return nil
}

// DeleteByUserID removes the resume of a user, if any
func (r *ResumeRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deleteOwned(r.store.data.resumes, userID, resumeOwner)
	return nil
}
