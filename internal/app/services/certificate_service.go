package services

import (
	"context"
	"mime/multipart"
	"strings"

	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
)

// CertificateService manages certificates and their images
type CertificateService struct {
	*recordSupport
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(support *recordSupport) *CertificateService {
	return &CertificateService{recordSupport: support}
}

// List returns certificates, optionally only those of userID
func (s *CertificateService) List(ctx context.Context, userID *int64) ([]dto.CertificateResponse, error) {
	items, err := s.repos.Certificates.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewCertificateResponses(items), nil
}

// Get returns one certificate
func (s *CertificateService) Get(ctx context.Context, id int64) (*dto.CertificateResponse, error) {
	c, err := s.repos.Certificates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCertificateResponse(c)
	return &resp, nil
}

// Create adds a certificate with an optional image
func (s *CertificateService) Create(ctx context.Context, actor *authz.Actor, req *dto.CreateCertificateRequest, image *multipart.FileHeader) (*dto.CertificateResponse, error) {
	ownerID, err := s.resolveOwner(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	c := &models.Certificate{
		UserID:          ownerID,
		Title:           strings.TrimSpace(req.Title),
		IssuedBy:        strings.TrimSpace(req.IssuedBy),
		IssueDate:       parseDate(errs, "issue_date", req.IssueDate),
		CertificateLink: optionalText(req.CertificateLink),
	}
	validateCertificate(errs, c)
	if err := errs.err(); err != nil {
		return nil, err
	}

	c.Image, err = s.store(ctx, image, models.FolderCertificates, "image")
	if err != nil {
		return nil, err
	}
	if err := s.repos.Certificates.Create(ctx, c); err != nil {
		s.discard(ctx, c.Image)
		return nil, err
	}
	s.metrics.IncCreated("certificate")

	resp := dto.NewCertificateResponse(c)
	return &resp, nil
}

// Update changes a certificate the actor owns. A new image replaces the old one.
func (s *CertificateService) Update(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateCertificateRequest, partial bool, image *multipart.FileHeader) (*dto.CertificateResponse, error) {
	c, err := s.repos.Certificates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwned(actor, authz.OpUpdate, c.OwnerID()); err != nil {
		return nil, err
	}
	if err := requireComplete(partial, req.Missing()); err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	if req.Title != nil {
		c.Title = strings.TrimSpace(*req.Title)
	}
	if req.IssuedBy != nil {
		c.IssuedBy = strings.TrimSpace(*req.IssuedBy)
	}
	if req.IssueDate != nil {
		c.IssueDate = parseDate(errs, "issue_date", *req.IssueDate)
	}
	if req.CertificateLink != nil || !partial {
		c.CertificateLink = optionalText(req.CertificateLink)
	}
	validateCertificate(errs, c)
	if err := errs.err(); err != nil {
		return nil, err
	}

	oldImage := c.Image
	newImage, err := s.store(ctx, image, models.FolderCertificates, "image")
	if err != nil {
		return nil, err
	}
	if newImage != nil {
		c.Image = newImage
	}

	if err := s.repos.Certificates.Update(ctx, c); err != nil {
		s.discard(ctx, newImage)
		return nil, err
	}
	if newImage != nil {
		s.discard(ctx, oldImage)
	}

	resp := dto.NewCertificateResponse(c)
	return &resp, nil
}

// Delete removes a certificate the actor owns together with its image
func (s *CertificateService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	c, err := s.repos.Certificates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwned(actor, authz.OpDelete, c.OwnerID()); err != nil {
		return err
	}
	if err := s.repos.Certificates.Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, c.Image)
	s.metrics.IncDeleted("certificate")
	return nil
}

func validateCertificate(errs fieldErrors, c *models.Certificate) {
	if c.Title == "" {
		errs.add("title", "this field may not be blank")
	}
	if c.IssuedBy == "" {
		errs.add("issued_by", "this field may not be blank")
	}
}
