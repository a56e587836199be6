package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/pkg/dberrors"
	"github.com/yigit/campusnet/internal/pkg/logger"
)

var postColumns = []string{
	"p.id", "p.user_id", "p.content",
	"ARRAY(SELECT l.user_id FROM post_likes l WHERE l.post_id = p.id ORDER BY l.user_id) AS likes",
	"(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count",
	"p.created_at", "p.updated_at",
}

// PostgresPostRepository handles post and post like database operations
type PostgresPostRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db DBTX) *PostgresPostRepository {
	return &PostgresPostRepository{db: db, sb: statementBuilder()}
}

func scanPost(row pgx.Row) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.Likes, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt)
	if p.Likes == nil {
		p.Likes = []int64{}
	}
	return p, err
}

// Create inserts a post
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	sql, args, err := r.sb.Insert("posts").
		Columns("user_id", "content").
		Values(post.UserID, post.Content).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return errOwnerNotFound()
		}
		logger.Error().Err(err).Int64("userID", post.UserID).Msg("Error executing create post query")
		return fmt.Errorf("error creating post: %w", err)
	}
	post.Likes = []int64{}
	post.CommentCount = 0
	return nil
}

// GetByID retrieves a post with its likes and comment count
func (r *PostgresPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := r.sb.Select(postColumns...).From("posts p").Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound("post")
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post by ID: %w", err)
	}
	return post, nil
}

// List retrieves posts newest first, optionally only those of one author
func (r *PostgresPostRepository) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	q := newestFirst(r.sb.Select(postColumns...).From("posts p"), "p.id", filter.Limit)
	if filter.UserID != nil {
		q = q.Where(squirrel.Eq{"p.user_id": *filter.UserID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list posts query")
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

// Update persists a post's content
func (r *PostgresPostRepository) Update(ctx context.Context, post *models.Post) error {
	sql, args, err := r.sb.Update("posts").
		Set("content", post.Content).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": post.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errNotFound("post")
		}
		logger.Error().Err(err).Int64("postID", post.ID).Msg("Error executing update post query")
		return fmt.Errorf("error updating post: %w", err)
	}
	return nil
}

// Delete removes a post; its comments and likes go with it
func (r *PostgresPostRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("posts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("post")
	}
	return nil
}

// DeleteByUserID removes every post of a user
func (r *PostgresPostRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("posts").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete posts query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user posts")
		return fmt.Errorf("error deleting posts of user: %w", err)
	}
	return nil
}

// ToggleLike flips userID's like on a post
func (r *PostgresPostRepository) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	return toggleLike(ctx, r.db, r.sb, "post_likes", "post_id", postID, userID, "post")
}

// DeleteLikesByUserID removes every post like a user gave
func (r *PostgresPostRepository) DeleteLikesByUserID(ctx context.Context, userID int64) error {
	return deleteLikesBy(ctx, r.db, r.sb, "post_likes", userID)
}

// toggleLike removes the like row if present and inserts it otherwise
func toggleLike(ctx context.Context, db DBTX, sb squirrel.StatementBuilderType, table, column string, targetID, userID int64, entity string) (bool, error) {
	sql, args, err := sb.Delete(table).Where(squirrel.Eq{column: targetID, "user_id": userID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build unlike query: %w", err)
	}
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Int64("targetID", targetID).Msg("Error removing like")
		return false, fmt.Errorf("error removing like: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	sql, args, err = sb.Insert(table).Columns(column, "user_id").Values(targetID, userID).
		Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build like query: %w", err)
	}
	if _, err := db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, errNotFound(entity)
		}
		logger.Error().Err(err).Str("table", table).Int64("targetID", targetID).Msg("Error adding like")
		return false, fmt.Errorf("error adding like: %w", err)
	}
	return true, nil
}

func deleteLikesBy(ctx context.Context, db DBTX, sb squirrel.StatementBuilderType, table string, userID int64) error {
	sql, args, err := sb.Delete(table).Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete likes query: %w", err)
	}
	if _, err := db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("table", table).Int64("userID", userID).Msg("Error deleting likes of user")
		return fmt.Errorf("error deleting likes of user: %w", err)
	}
	return nil
}
