package memory

import (
	"context"

	"github.com/yigit/campusnet/internal/app/models"
)

func achievementOwner(a models.Achievement) int64 { return a.UserID }

// AchievementRepository is the in-memory achievement store
type AchievementRepository struct {
	store *Store
}

// Create inserts an achievement
func (r *AchievementRepository) Create(_ context.Context, achievement *models.Achievement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.users[achievement.UserID]; !ok {
		return notFound("user")
	}
	achievement.ID = r.store.id()
	achievement.CreatedAt = r.store.now()
	r.store.data.achievements[achievement.ID] = *achievement
	return nil
}

// GetByID retrieves an achievement by ID
func (r *AchievementRepository) GetByID(_ context.Context, id int64) (*models.Achievement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.data.achievements[id]
	if !ok {
		return nil, notFound("achievement")
	}
	return &a, nil
}

// List retrieves achievements, optionally only those of one user
func (r *AchievementRepository) List(_ context.Context, userID *int64) ([]*models.Achievement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listOwned(r.store.data.achievements, userID, achievementOwner), nil
}

// Update persists an achievement's fields
func (r *AchievementRepository) Update(_ context.Context, achievement *models.Achievement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.data.achievements[achievement.ID]
	if !ok {
		return notFound("achievement")
	}
	updated := *achievement
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	r.store.data.achievements[achievement.ID] = updated
	return nil
}

// Delete removes an achievement
func (r *AchievementRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.achievements[id]; !ok {
		return notFound("achievement")
	}
	delete(r.store.data.achievements, id)
	return nil
}

// DeleteByUserID removes every achievement of a user
func (r *AchievementRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deleteOwned(r.store.data.achievements, userID, achievementOwner)
	return nil
}
