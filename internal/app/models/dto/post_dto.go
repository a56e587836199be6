package dto

import (
	"time"

	"github.com/yigit/campusnet/internal/app/models"
)

// PostResponse is the wire form of a feed post
type PostResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user"`
	Content      string    `json:"content"`
	Likes        []int64   `json:"likes"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewPostResponse converts a models.Post
func NewPostResponse(p *models.Post) PostResponse {
	likes := p.Likes
	if likes == nil {
		likes = []int64{}
	}
	return PostResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Content:      p.Content,
		Likes:        likes,
		LikeCount:    len(likes),
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewPostResponses converts a slice, never returning nil
func NewPostResponses(items []*models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewPostResponse(p))
	}
	return out
}

// CreatePostRequest creates a post authored by the caller
type CreatePostRequest struct {
	Content string `json:"content" form:"content" binding:"required,max=800"`
}

// UpdatePostRequest carries a full or partial post update
type UpdatePostRequest struct {
	Content *string `json:"content" form:"content" binding:"omitempty,max=800"`
}

// Missing lists the fields a full update must carry but this one does not
func (r *UpdatePostRequest) Missing() []string {
	if r.Content == nil {
		return []string{"content"}
	}
	return nil
}

// CommentResponse is the wire form of a comment
type CommentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post"`
	UserID    int64     `json:"user"`
	Content   string    `json:"content"`
	Likes     []int64   `json:"likes"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse converts a models.Comment
func NewCommentResponse(c *models.Comment) CommentResponse {
	likes := c.Likes
	if likes == nil {
		likes = []int64{}
	}
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		Likes:     likes,
		LikeCount: len(likes),
		CreatedAt: c.CreatedAt,
	}
}

// NewCommentResponses converts a slice, never returning nil
func NewCommentResponses(items []*models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

// CreateCommentRequest adds a comment to a post
type CreateCommentRequest struct {
	Content string `json:"content" form:"content" binding:"required,max=300"`
}
