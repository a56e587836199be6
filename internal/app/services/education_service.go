package services

import (
	"context"
	"strings"

	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
)

// EducationService manages education records
type EducationService struct {
	*recordSupport
}

// NewEducationService creates a new EducationService
func NewEducationService(support *recordSupport) *EducationService {
	return &EducationService{recordSupport: support}
}

// List returns education records, optionally only those of userID
func (s *EducationService) List(ctx context.Context, userID *int64) ([]dto.EducationResponse, error) {
	items, err := s.repos.Educations.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewEducationResponses(items), nil
}

// Get returns one education record
func (s *EducationService) Get(ctx context.Context, id int64) (*dto.EducationResponse, error) {
	e, err := s.repos.Educations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEducationResponse(e)
	return &resp, nil
}

// Create adds an education record for the actor
func (s *EducationService) Create(ctx context.Context, actor *authz.Actor, req *dto.CreateEducationRequest) (*dto.EducationResponse, error) {
	ownerID, err := s.resolveOwner(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}

	e := &models.Education{
		UserID:      ownerID,
		Degree:      strings.TrimSpace(req.Degree),
		Institution: strings.TrimSpace(req.Institution),
		StartYear:   req.StartYear,
		EndYear:     req.EndYear,
	}
	if err := validateEducation(e); err != nil {
		return nil, err
	}

	if err := s.repos.Educations.Create(ctx, e); err != nil {
		return nil, err
	}
	s.metrics.IncCreated("education")

	resp := dto.NewEducationResponse(e)
	return &resp, nil
}

// Update changes an education record the actor owns
func (s *EducationService) Update(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateEducationRequest, partial bool) (*dto.EducationResponse, error) {
	e, err := s.repos.Educations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwned(actor, authz.OpUpdate, e.OwnerID()); err != nil {
		return nil, err
	}
	if err := requireComplete(partial, req.Missing()); err != nil {
		return nil, err
	}

	if req.Degree != nil {
		e.Degree = strings.TrimSpace(*req.Degree)
	}
	if req.Institution != nil {
		e.Institution = strings.TrimSpace(*req.Institution)
	}
	if req.StartYear != nil {
		e.StartYear = *req.StartYear
	}
	if req.EndYear != nil || !partial {
		e.EndYear = req.EndYear
	}
	if err := validateEducation(e); err != nil {
		return nil, err
	}

	if err := s.repos.Educations.Update(ctx, e); err != nil {
		return nil, err
	}

	resp := dto.NewEducationResponse(e)
	return &resp, nil
}

// Delete removes an education record the actor owns
func (s *EducationService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	e, err := s.repos.Educations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwned(actor, authz.OpDelete, e.OwnerID()); err != nil {
		return err
	}
	if err := s.repos.Educations.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.IncDeleted("education")
	return nil
}

func validateEducation(e *models.Education) error {
	errs := fieldErrors{}
	if e.Degree == "" {
		errs.add("degree", "this field may not be blank")
	}
	if e.Institution == "" {
		errs.add("institution", "this field may not be blank")
	}
	validateYears(errs, e.StartYear, e.EndYear)
	return errs.err()
}
