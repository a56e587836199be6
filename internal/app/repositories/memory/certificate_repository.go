package memory

import (
	"context"

	"github.com/yigit/campusnet/internal/app/models"
)

func certificateOwner(c models.Certificate) int64 { return c.UserID }

// CertificateRepository is the in-memory certificate store
type CertificateRepository struct {
	store *Store
}

// Create inserts a certificate
func (r *CertificateRepository) Create(_ context.Context, certificate *models.Certificate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.users[certificate.UserID]; !ok {
		return notFound("user")
	}
	certificate.ID = r.store.id()
	certificate.CreatedAt = r.store.now()
	r.store.data.certificates[certificate.ID] = *certificate
	return nil
}

// GetByID retrieves a certificate by ID
func (r *CertificateRepository) GetByID(_ context.Context, id int64) (*models.Certificate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.data.certificates[id]
	if !ok {
		return nil, notFound("certificate")
	}
	return &c, nil
}

// List retrieves certificates, optionally only those of one user
func (r *CertificateRepository) List(_ context.Context, userID *int64) ([]*models.Certificate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listOwned(r.store.data.certificates, userID, certificateOwner), nil
}

// Update persists a certificate's fields
func (r *CertificateRepository) Update(_ context.Context, certificate *models.Certificate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.data.certificates[certificate.ID]
	if !ok {
		return notFound("certificate")
	}
	updated := *certificate
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	r.store.data.certificates[certificate.ID] = updated
	return nil
}

// Delete removes a certificate
func (r *CertificateRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.certificates[id]; !ok {
		return notFound("certificate")
	}
	delete(r.store.data.certificates, id)
	return nil
}

// DeleteByUserID removes every certificate of a user
func (r *CertificateRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deleteOwned(r.store.data.certificates, userID, certificateOwner)
	return nil
}
