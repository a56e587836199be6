package memory

import (
	"context"

	"github.com/yigit/campusnet/internal/app/models"
)

// CommentRepository is the in-memory comment store
type CommentRepository struct {
	store *Store
}

func (s *Store) deleteComment(id int64) {
	dropLikes(s.data.commentLikes, func(l like) bool { return l.targetID == id })
	delete(s.data.comments, id)
}

func (s *Store) decorateComment(c models.Comment) *models.Comment {
	c.Likes = likers(s.data.commentLikes, c.ID)
	return &c
}

// Create inserts a comment on an existing post
func (r *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.posts[comment.PostID]; !ok {
		return notFound("post")
	}
	if _, ok := r.store.data.users[comment.UserID]; !ok {
		return notFound("user")
	}
	comment.ID = r.store.id()
	comment.CreatedAt = r.store.now()
	comment.Likes = []int64{}

	stored := *comment
	stored.Likes = nil
	r.store.data.comments[comment.ID] = stored
	return nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.data.comments[id]
	if !ok {
		return nil, notFound("comment")
	}
	return r.store.decorateComment(c), nil
}

// ListByPost retrieves the comments of a post, newest first
func (r *CommentRepository) ListByPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	keys := sortedKeys(r.store.data.comments)
	comments := []*models.Comment{}
	for i := len(keys) - 1; i >= 0; i-- {
		c := r.store.data.comments[keys[i]]
		if c.PostID == postID {
			comments = append(comments, r.store.decorateComment(c))
		}
	}
	return comments, nil
}

// Delete removes a comment and its likes
func (r *CommentRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.comments[id]; !ok {
		return notFound("comment")
	}
	r.store.deleteComment(id)
	return nil
}

// DeleteByUserID removes every comment a user wrote
func (r *CommentRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, c := range r.store.data.comments {
		if c.UserID == userID {
			r.store.deleteComment(id)
		}
	}
	return nil
}

// ToggleLike flips userID's like on a comment
func (r *CommentRepository) ToggleLike(_ context.Context, commentID, userID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.comments[commentID]; !ok {
		return false, notFound("comment")
	}
	if _, ok := r.store.data.users[userID]; !ok {
		return false, notFound("user")
	}
	return toggle(r.store.data.commentLikes, like{targetID: commentID, userID: userID}), nil
}

// DeleteLikesByUserID removes every comment like a user gave
func (r *CommentRepository) DeleteLikesByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	dropLikes(r.store.data.commentLikes, func(l like) bool { return l.userID == userID })
	return nil
}
