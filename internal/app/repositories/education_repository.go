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

var educationColumns = []string{"id", "user_id", "degree", "institution", "start_year", "end_year", "created_at"}

// PostgresEducationRepository handles education database operations
type PostgresEducationRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresEducationRepository creates a new PostgresEducationRepository
func NewPostgresEducationRepository(db DBTX) *PostgresEducationRepository {
	return &PostgresEducationRepository{db: db, sb: statementBuilder()}
}

func scanEducation(row pgx.Row) (*models.Education, error) {
	e := &models.Education{}
	err := row.Scan(&e.ID, &e.UserID, &e.Degree, &e.Institution, &e.StartYear, &e.EndYear, &e.CreatedAt)
	return e, err
}

// Create inserts an education record
func (r *PostgresEducationRepository) Create(ctx context.Context, education *models.Education) error {
	sql, args, err := r.sb.Insert("educations").
		Columns("user_id", "degree", "institution", "start_year", "end_year").
		Values(education.UserID, education.Degree, education.Institution, education.StartYear, education.EndYear).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create education query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&education.ID, &education.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return errOwnerNotFound()
		}
		logger.Error().Err(err).Int64("userID", education.UserID).Msg("Error executing create education query")
		return fmt.Errorf("error creating education: %w", err)
	}
	return nil
}

// GetByID retrieves an education record by ID
func (r *PostgresEducationRepository) GetByID(ctx context.Context, id int64) (*models.Education, error) {
	sql, args, err := r.sb.Select(educationColumns...).From("educations").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get education query: %w", err)
	}

	education, err := scanEducation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound("education")
		}
		logger.Error().Err(err).Int64("educationID", id).Msg("Error scanning education row")
		return nil, fmt.Errorf("error getting education by ID: %w", err)
	}
	return education, nil
}

// List retrieves education records, optionally only those of one user
func (r *PostgresEducationRepository) List(ctx context.Context, userID *int64) ([]*models.Education, error) {
	sql, args, err := ownerFilter(r.sb.Select(educationColumns...).From("educations"), userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list educations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list educations query")
		return nil, fmt.Errorf("error querying educations: %w", err)
	}
	defer rows.Close()

	items := []*models.Education{}
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning education row: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating education rows: %w", err)
	}
	return items, nil
}

// Update persists an education record's fields
func (r *PostgresEducationRepository) Update(ctx context.Context, education *models.Education) error {
	sql, args, err := r.sb.Update("educations").
		SetMap(map[string]interface{}{
			"degree":      education.Degree,
			"institution": education.Institution,
			"start_year":  education.StartYear,
			"end_year":    education.EndYear,
		}).
		Where(squirrel.Eq{"id": education.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update education query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("educationID", education.ID).Msg("Error executing update education query")
		return fmt.Errorf("error updating education: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("education")
	}
	return nil
}

// Delete removes an education record
func (r *PostgresEducationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("educations").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete education query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("educationID", id).Msg("Error executing delete education query")
		return fmt.Errorf("error deleting education: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("education")
	}
	return nil
}

// DeleteByUserID removes every education record of a user
func (r *PostgresEducationRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("educations").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete educations query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user educations")
		return fmt.Errorf("error deleting educations of user: %w", err)
	}
	return nil
}
