package dto

import "github.com/yigit/campusnet/internal/app/models"

// CertificateResponse is the wire form of a certificate
type CertificateResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"user"`
	Title           string  `json:"title"`
	IssuedBy        string  `json:"issued_by"`
	IssueDate       string  `json:"issue_date" example:"2024-06-01"`
	Image           *string `json:"image"`
	CertificateLink *string `json:"certificate_link"`
}

// NewCertificateResponse converts a models.Certificate
func NewCertificateResponse(c *models.Certificate) CertificateResponse {
	return CertificateResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Title:           c.Title,
		IssuedBy:        c.IssuedBy,
		IssueDate:       c.IssueDate.Format(models.DateLayout),
		Image:           c.Image,
		CertificateLink: c.CertificateLink,
	}
}

// NewCertificateResponses converts a slice, never returning nil
func NewCertificateResponses(items []*models.Certificate) []CertificateResponse {
	out := make([]CertificateResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCertificateResponse(c))
	}
	return out
}

// CreateCertificateRequest creates a certificate. An optional image arrives as a multipart part.
type CreateCertificateRequest struct {
	UserID          *int64  `json:"user" form:"user"`
	Title           string  `json:"title" form:"title" binding:"required,max=200"`
	IssuedBy        string  `json:"issued_by" form:"issued_by" binding:"required,max=200"`
	IssueDate       string  `json:"issue_date" form:"issue_date" binding:"required,datetime=2006-01-02"`
	CertificateLink *string `json:"certificate_link" form:"certificate_link" binding:"omitempty,url,max=200"`
}

// UpdateCertificateRequest carries a full or partial certificate update
type UpdateCertificateRequest struct {
	Title           *string `json:"title" form:"title" binding:"omitempty,min=1,max=200"`
	IssuedBy        *string `json:"issued_by" form:"issued_by" binding:"omitempty,min=1,max=200"`
	IssueDate       *string `json:"issue_date" form:"issue_date" binding:"omitempty,datetime=2006-01-02"`
	CertificateLink *string `json:"certificate_link" form:"certificate_link" binding:"omitempty,url,max=200"`
}

// Missing lists the fields a full update must carry but this one does not
func (r *UpdateCertificateRequest) Missing() []string {
	var missing []string
	if r.Title == nil {
		missing = append(missing, "title")
	}
	if r.IssuedBy == nil {
		missing = append(missing, "issued_by")
	}
	if r.IssueDate == nil {
		missing = append(missing, "issue_date")
	}
	return missing
}
