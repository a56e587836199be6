package memory

import (
	"context"
	"sort"

	"github.com/yigit/campusnet/internal/app/models"
)

// PostRepository is the in-memory post store
type PostRepository struct {
	store *Store
}

// likers returns the sorted ids of users who liked targetID
func likers(likes map[like]struct{}, targetID int64) []int64 {
	ids := []int64{}
	for l := range likes {
		if l.targetID == targetID {
			ids = append(ids, l.userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func toggle(likes map[like]struct{}, key like) bool {
	if _, ok := likes[key]; ok {
		delete(likes, key)
		return false
	}
	likes[key] = struct{}{}
	return true
}

func dropLikes(likes map[like]struct{}, match func(like) bool) {
	for l := range likes {
		if match(l) {
			delete(likes, l)
		}
	}
}

func (s *Store) decoratePost(p models.Post) *models.Post {
	p.Likes = likers(s.data.postLikes, p.ID)
	p.CommentCount = 0
	for _, c := range s.data.comments {
		if c.PostID == p.ID {
			p.CommentCount++
		}
	}
	return &p
}

// deletePost removes a post with its comments and likes
func (s *Store) deletePost(id int64) {
	for cid, c := range s.data.comments {
		if c.PostID == id {
			s.deleteComment(cid)
		}
	}
	dropLikes(s.data.postLikes, func(l like) bool { return l.targetID == id })
	delete(s.data.posts, id)
}

// Create inserts a post
func (r *PostRepository) Create(_ context.Context, post *models.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.users[post.UserID]; !ok {
		return notFound("user")
	}
	post.ID = r.store.id()
	post.CreatedAt = r.store.now()
	post.UpdatedAt = post.CreatedAt
	post.Likes = []int64{}
	post.CommentCount = 0

	stored := *post
	stored.Likes = nil
	r.store.data.posts[post.ID] = stored
	return nil
}

// GetByID retrieves a post with its likes and comment count
func (r *PostRepository) GetByID(_ context.Context, id int64) (*models.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.data.posts[id]
	if !ok {
		return nil, notFound("post")
	}
	return r.store.decoratePost(p), nil
}

// List retrieves posts newest first, optionally only those of one author
func (r *PostRepository) List(_ context.Context, filter models.PostFilter) ([]*models.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	keys := sortedKeys(r.store.data.posts)
	posts := []*models.Post{}
	for i := len(keys) - 1; i >= 0; i-- {
		p := r.store.data.posts[keys[i]]
		if filter.UserID != nil && p.UserID != *filter.UserID {
			continue
		}
		posts = append(posts, r.store.decoratePost(p))
		if filter.Limit > 0 && uint64(len(posts)) == filter.Limit {
			break
		}
	}
	return posts, nil
}

// Update persists a post's content
func (r *PostRepository) Update(_ context.Context, post *models.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.data.posts[post.ID]
	if !ok {
		return notFound("post")
	}
	existing.Content = post.Content
	existing.UpdatedAt = r.store.now()
	r.store.data.posts[post.ID] = existing
	post.UpdatedAt = existing.UpdatedAt
	return nil
}

// Delete removes a post; its comments and likes go with it
func (r *PostRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.posts[id]; !ok {
		return notFound("post")
	}
	r.store.deletePost(id)
	return nil
}

// DeleteByUserID removes every post of a user
func (r *PostRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, p := range r.store.data.posts {
		if p.UserID == userID {
			r.store.deletePost(id)
		}
	}
	return nil
}

// ToggleLike flips userID's like on a post
func (r *PostRepository) ToggleLike(_ context.Context, postID, userID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.posts[postID]; !ok {
		return false, notFound("post")
	}
	if _, ok := r.store.data.users[userID]; !ok {
		return false, notFound("user")
	}
	return toggle(r.store.data.postLikes, like{targetID: postID, userID: userID}), nil
}

// DeleteLikesByUserID removes every post like a user gave
func (r *PostRepository) DeleteLikesByUserID(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	dropLikes(r.store.data.postLikes, func(l like) bool { return l.userID == userID })
	return nil
}
