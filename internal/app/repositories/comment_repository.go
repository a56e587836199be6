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

const commentPostConstraint = "comments_post_id_fkey"

var commentColumns = []string{
	"c.id", "c.post_id", "c.user_id", "c.content",
	"ARRAY(SELECT l.user_id FROM comment_likes l WHERE l.comment_id = c.id ORDER BY l.user_id) AS likes",
	"c.created_at",
}

// PostgresCommentRepository handles comment database operations
type PostgresCommentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db DBTX) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db, sb: statementBuilder()}
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	c := &models.Comment{}
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.Likes, &c.CreatedAt)
	if c.Likes == nil {
		c.Likes = []int64{}
	}
	return c, err
}

// Create inserts a comment on an existing post
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "user_id", "content").
		Values(comment.PostID, comment.UserID, comment.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create comment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		switch {
		case dberrors.IsForeignKeyConstraint(err, commentPostConstraint):
			return errNotFound("post")
		case dberrors.IsForeignKeyViolation(err):
			return errOwnerNotFound()
		}
		logger.Error().Err(err).Int64("postID", comment.PostID).Msg("Error executing create comment query")
		return fmt.Errorf("error creating comment: %w", err)
	}
	comment.Likes = []int64{}
	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := r.sb.Select(commentColumns...).From("comments c").Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}

	comment, err := scanComment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound("comment")
		}
		logger.Error().Err(err).Int64("commentID", id).Msg("Error scanning comment row")
		return nil, fmt.Errorf("error getting comment by ID: %w", err)
	}
	return comment, nil
}

// ListByPost retrieves the comments of a post, newest first
func (r *PostgresCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	sql, args, err := newestFirst(r.sb.Select(commentColumns...).From("comments c"), "c.id", 0).
		Where(squirrel.Eq{"c.post_id": postID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// Delete removes a comment and its likes
func (r *PostgresCommentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("comments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete comment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error executing delete comment query")
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("comment")
	}
	return nil
}

// DeleteByUserID removes every comment a user wrote
func (r *PostgresCommentRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("comments").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete comments query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user comments")
		return fmt.Errorf("error deleting comments of user: %w", err)
	}
	return nil
}

// ToggleLike flips userID's like on a comment
func (r *PostgresCommentRepository) ToggleLike(ctx context.Context, commentID, userID int64) (bool, error) {
	return toggleLike(ctx, r.db, r.sb, "comment_likes", "comment_id", commentID, userID, "comment")
}

// DeleteLikesByUserID removes every comment like a user gave
func (r *PostgresCommentRepository) DeleteLikesByUserID(ctx context.Context, userID int64) error {
	return deleteLikesBy(ctx, r.db, r.sb, "comment_likes", userID)
}
