package dto

import (
	"time"

	"github.com/yigit/campusnet/internal/app/models"
)

// ResumeResponse is the wire form of a resume
type ResumeResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user"`
	File       string    `json:"file"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewResumeResponse converts a models.Resume; nil stays nil
func NewResumeResponse(r *models.Resume) *ResumeResponse {
	if r == nil {
		return nil
	}
	return &ResumeResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		File:       r.File,
		UploadedAt: r.UploadedAt,
	}
}

// NewResumeResponses converts a slice, never returning nil
func NewResumeResponses(items []*models.Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(items))
	for _, r := range items {
		out = append(out, *NewResumeResponse(r))
	}
	return out
}

// CreateResumeRequest carries the non-file fields of a resume upload
type CreateResumeRequest struct {
	UserID *int64 `form:"user"`
}
