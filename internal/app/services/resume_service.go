package services

import (
	"context"
	"mime/multipart"

	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// ResumeService manages the single resume file of each user
type ResumeService struct {
	*recordSupport
}

// NewResumeService creates a new ResumeService
func NewResumeService(support *recordSupport) *ResumeService {
	return &ResumeService{recordSupport: support}
}

// List returns resumes, optionally only the one of userID
func (s *ResumeService) List(ctx context.Context, userID *int64) ([]dto.ResumeResponse, error) {
	items, err := s.repos.Resumes.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewResumeResponses(items), nil
}

// Get returns one resume
func (s *ResumeService) Get(ctx context.Context, id int64) (*dto.ResumeResponse, error) {
	r, err := s.repos.Resumes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewResumeResponse(r), nil
}

// Create uploads a resume. A user who already has one gets a conflict.
func (s *ResumeService) Create(ctx context.Context, actor *authz.Actor, req *dto.CreateResumeRequest, file *multipart.FileHeader) (*dto.ResumeResponse, error) {
	ownerID, err := s.resolveOwner(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, errNoFile()
	}

	ref, err := s.store(ctx, file, models.FolderResumes, "file")
	if err != nil {
		return nil, err
	}

	r := &models.Resume{UserID: ownerID, File: *ref}
	if err := s.repos.Resumes.Create(ctx, r); err != nil {
		s.discard(ctx, ref)
		return nil, err
	}
	s.metrics.IncCreated("resume")

	return dto.NewResumeResponse(r), nil
}

// Update replaces the resume file. uploaded_at keeps its original value.
// A partial update without a file changes nothing.
func (s *ResumeService) Update(ctx context.Context, actor *authz.Actor, id int64, partial bool, file *multipart.FileHeader) (*dto.ResumeResponse, error) {
	r, err := s.repos.Resumes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwned(actor, authz.OpUpdate, r.OwnerID()); err != nil {
		return nil, err
	}
	if file == nil {
		if partial {
			return dto.NewResumeResponse(r), nil
		}
		return nil, errNoFile()
	}

	ref, err := s.store(ctx, file, models.FolderResumes, "file")
	if err != nil {
		return nil, err
	}

	old := r.File
	r.File = *ref
	if err := s.repos.Resumes.Update(ctx, r); err != nil {
		s.discard(ctx, ref)
		return nil, err
	}
	s.discard(ctx, &old)

	return dto.NewResumeResponse(r), nil
}

// Delete removes a resume the actor owns together with its file
func (s *ResumeService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	r, err := s.repos.Resumes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwned(actor, authz.OpDelete, r.OwnerID()); err != nil {
		return err
	}
	if err := s.repos.Resumes.Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, &r.File)
	s.metrics.IncDeleted("resume")
	return nil
}

func errNoFile() error {
	return apperrors.NewValidationError(map[string]string{"file": "no file was submitted"})
}
