package dto

import "github.com/yigit/campusnet/internal/app/models"

// AchievementResponse is the wire form of an achievement
type AchievementResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date" example:"2024-05-20"`
	Image       *string `json:"image"`
}

// NewAchievementResponse converts a models.Achievement
func NewAchievementResponse(a *models.Achievement) AchievementResponse {
	resp := AchievementResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		Description: a.Description,
		Image:       a.Image,
	}
	if a.Date != nil {
		d := a.Date.Format(models.DateLayout)
		resp.Date = &d
	}
	return resp
}

// NewAchievementResponses converts a slice, never returning nil
func NewAchievementResponses(items []*models.Achievement) []AchievementResponse {
	out := make([]AchievementResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAchievementResponse(a))
	}
	return out
}

// CreateAchievementRequest creates an achievement. An optional image arrives as a multipart part.
type CreateAchievementRequest struct {
	UserID      *int64  `json:"user" form:"user"`
	Title       string  `json:"title" form:"title" binding:"required,max=200"`
	Description *string `json:"description" form:"description"`
	Date        *string `json:"date" form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateAchievementRequest carries a full or partial achievement update
type UpdateAchievementRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" form:"description"`
	Date        *string `json:"date" form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Missing lists the fields a full update must carry but this one does not
func (r *UpdateAchievementRequest) Missing() []string {
	if r.Title == nil {
		return []string{"title"}
	}
	return nil
}
