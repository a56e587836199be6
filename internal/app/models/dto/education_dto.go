package dto

import "github.com/yigit/campusnet/internal/app/models"

// EducationResponse is the wire form of an education record
type EducationResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartYear   int    `json:"start_year"`
	EndYear     *int   `json:"end_year"`
}

// NewEducationResponse converts a models.Education
func NewEducationResponse(e *models.Education) EducationResponse {
	return EducationResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Degree:      e.Degree,
		Institution: e.Institution,
		StartYear:   e.StartYear,
		EndYear:     e.EndYear,
	}
}

// NewEducationResponses converts a slice, never returning nil
func NewEducationResponses(items []*models.Education) []EducationResponse {
	out := make([]EducationResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewEducationResponse(e))
	}
	return out
}

// CreateEducationRequest creates an education record. User defaults to the caller.
type CreateEducationRequest struct {
	UserID      *int64 `json:"user" form:"user"`
	Degree      string `json:"degree" form:"degree" binding:"required,max=200"`
	Institution string `json:"institution" form:"institution" binding:"required,max=200"`
	StartYear   int    `json:"start_year" form:"start_year" binding:"required,gte=1900,lte=2200"`
	EndYear     *int   `json:"end_year" form:"end_year" binding:"omitempty,gte=1900,lte=2200"`
}

// UpdateEducationRequest carries a full or partial education update
type UpdateEducationRequest struct {
	Degree      *string `json:"degree" form:"degree" binding:"omitempty,min=1,max=200"`
	Institution *string `json:"institution" form:"institution" binding:"omitempty,min=1,max=200"`
	StartYear   *int    `json:"start_year" form:"start_year" binding:"omitempty,gte=1900,lte=2200"`
	EndYear     *int    `json:"end_year" form:"end_year" binding:"omitempty,gte=1900,lte=2200"`
}

// Missing lists the fields a full update must carry but this one does not
func (r *UpdateEducationRequest) Missing() []string {
	var missing []string
	if r.Degree == nil {
		missing = append(missing, "degree")
	}
	if r.Institution == nil {
		missing = append(missing, "institution")
	}
	if r.StartYear == nil {
		missing = append(missing, "start_year")
	}
	return missing
}
