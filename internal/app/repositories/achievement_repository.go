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

var achievementColumns = []string{"id", "user_id", "title", "description", "date", "image", "created_at"}

// PostgresAchievementRepository handles achievement database operations
type PostgresAchievementRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresAchievementRepository creates a new PostgresAchievementRepository
func NewPostgresAchievementRepository(db DBTX) *PostgresAchievementRepository {
	return &PostgresAchievementRepository{db: db, sb: statementBuilder()}
}

func scanAchievement(row pgx.Row) (*models.Achievement, error) {
	a := &models.Achievement{}
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date, &a.Image, &a.CreatedAt)
	return a, err
}

// Create inserts an achievement
func (r *PostgresAchievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	sql, args, err := r.sb.Insert("achievements").
		Columns("user_id", "title", "description", "date", "image").
		Values(achievement.UserID, achievement.Title, achievement.Description, achievement.Date, achievement.Image).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create achievement query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&achievement.ID, &achievement.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return errOwnerNotFound()
		}
		logger.Error().Err(err).Int64("userID", achievement.UserID).Msg("Error executing create achievement query")
		return fmt.Errorf("error creating achievement: %w", err)
	}
	return nil
}

// GetByID retrieves an achievement by ID
func (r *PostgresAchievementRepository) GetByID(ctx context.Context, id int64) (*models.Achievement, error) {
	sql, args, err := r.sb.Select(achievementColumns...).From("achievements").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get achievement query: %w", err)
	}

	achievement, err := scanAchievement(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound("achievement")
		}
		logger.Error().Err(err).Int64("achievementID", id).Msg("Error scanning achievement row")
		return nil, fmt.Errorf("error getting achievement by ID: %w", err)
	}
	return achievement, nil
}

// List retrieves achievements, optionally only those of one user
func (r *PostgresAchievementRepository) List(ctx context.Context, userID *int64) ([]*models.Achievement, error) {
	sql, args, err := ownerFilter(r.sb.Select(achievementColumns...).From("achievements"), userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list achievements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list achievements query")
		return nil, fmt.Errorf("error querying achievements: %w", err)
	}
	defer rows.Close()

	items := []*models.Achievement{}
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning achievement row: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement rows: %w", err)
	}
	return items, nil
}

// Update persists an achievement's fields
func (r *PostgresAchievementRepository) Update(ctx context.Context, achievement *models.Achievement) error {
	sql, args, err := r.sb.Update("achievements").
		SetMap(map[string]interface{}{
			"title":       achievement.Title,
			"description": achievement.Description,
			"date":        achievement.Date,
			"image":       achievement.Image,
		}).
		Where(squirrel.Eq{"id": achievement.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update achievement query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("achievementID", achievement.ID).Msg("Error executing update achievement query")
		return fmt.Errorf("error updating achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("achievement")
	}
	return nil
}

// Delete removes an achievement
func (r *PostgresAchievementRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("achievements").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete achievement query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("achievementID", id).Msg("Error executing delete achievement query")
		return fmt.Errorf("error deleting achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("achievement")
	}
	return nil
}

// DeleteByUserID removes every achievement of a user
func (r *PostgresAchievementRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("achievements").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete achievements query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user achievements")
		return fmt.Errorf("error deleting achievements of user: %w", err)
	}
	return nil
}
