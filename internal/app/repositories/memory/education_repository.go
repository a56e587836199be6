package memory

import (
	"context"

	"github.com/yigit/campusnet/internal/app/models"
)

func educationOwner(e models.Education) int64 { return e.UserID }

// EducationRepository is the in-memory education store
type EducationRepository struct {
	store *Store
}

// Create inserts an education record
func (r *EducationRepository) Create(_ context.Context, education *models.Education) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.users[education.UserID]; !ok {
		return notFound("user")
	}
	education.ID = r.store.id()
	education.CreatedAt = r.store.now()
	r.store.data.educations[education.ID] = *education
	return nil
}

// GetByID retrieves an education record by ID
func (r *EducationRepository) GetByID(_ context.Context, id int64) (*models.Education, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.data.educations[id]
	if !ok {
		return nil, notFound("education")
	}
	return &e, nil
}

// List retrieves education records, optionally only those of one user
func (r *EducationRepository) List(_ context.Context, userID *int64) ([]*models.Education, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listOwned(r.store.data.educations, userID, educationOwner), nil
}

// Update persists an education record's fields
func (r *EducationRepository) Update(_ context.Context, education *models.Education) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.data.educations[education.ID]
	if !ok {
		return notFound("education")
	}
	updated := *education
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	r.store.data.educations[education.ID] = updated
	return nil
}

// Delete removes an education record
func (r *EducationRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.educations[id]; !ok {
		return notFound("education")
	}
	delete(r.store.data.educations, id)
	return nil
}

// DeleteByUserID removes every education record of a user
func (r *EducationRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deleteOwned(r.store.data.educations, userID, educationOwner)
	return nil
}
