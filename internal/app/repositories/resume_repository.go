package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
	"github.com/yigit/campusnet/internal/pkg/dberrors"
	"github.com/yigit/campusnet/internal/pkg/logger"
)

const resumeUserConstraint = "resumes_user_id_key"

var resumeColumns = []string{"id", "user_id", "file", "uploaded_at"}

// PostgresResumeRepository handles resume database operations
type PostgresResumeRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresResumeRepository creates a new PostgresResumeRepository
func NewPostgresResumeRepository(db DBTX) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db, sb: statementBuilder()}
}

func scanResume(row pgx.Row) (*models.Resume, error) {
	r := &models.Resume{}
	err := row.Scan(&r.ID, &r.UserID, &r.File, &r.UploadedAt)
	return r, err
}

// Create inserts a resume. A second resume for the same user is a conflict.
func (r *PostgresResumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	sql, args, err := r.sb.Insert("resumes").
		Columns("user_id", "file").
		Values(resume.UserID, resume.File).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create resume query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&resume.ID, &resume.UploadedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, resumeUserConstraint) {
			return apperrors.NewConflictError("user", apperrors.ErrResumeAlreadyExists)
		}
		if dberrors.IsForeignKeyViolation(err) {
			return errOwnerNotFound()
		}
		logger.Error().Err(err).Int64("userID", resume.UserID).Msg("Error executing create resume query")
		return fmt.Errorf("error creating resume: %w", err)
	}
	return nil
}

func (r *PostgresResumeRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Resume, error) {
	sql, args, err := r.sb.Select(resumeColumns...).From("resumes").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get resume query: %w", err)
	}

	resume, err := scanResume(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound("resume")
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning resume row")
		return nil, fmt.Errorf("error getting resume: %w", err)
	}
	return resume, nil
}

// GetByID retrieves a resume by ID
func (r *PostgresResumeRepository) GetByID(ctx context.Context, id int64) (*models.Resume, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves the resume of a user
func (r *PostgresResumeRepository) GetByUserID(ctx context.Context, userID int64) (*models.Resume, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

// List retrieves resumes, optionally only the one of a single user
func (r *PostgresResumeRepository) List(ctx context.Context, userID *int64) ([]*models.Resume, error) {
	sql, args, err := ownerFilter(r.sb.Select(resumeColumns...).From("resumes"), userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list resumes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list resumes query")
		return nil, fmt.Errorf("error querying resumes: %w", err)
	}
	defer rows.Close()

	items := []*models.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning resume row: %w", err)
		}
		items = append(items, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resume rows: %w", err)
	}
	return items, nil
}

// Update replaces the resume file. uploaded_at is left untouched.
func (r *PostgresResumeRepository) Update(ctx context.Context, resume *models.Resume) error {
	sql, args, err := r.sb.Update("resumes").
		Set("file", resume.File).
		Where(squirrel.Eq{"id": resume.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update resume query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resumeID", resume.ID).Msg("Error executing update resume query")
		return fmt.Errorf("error updating resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("resume")
	}
	return nil
}

// Delete removes a resume
func (r *PostgresResumeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("resumes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete resume query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resumeID", id).Msg("Error executing delete resume query")
		return fmt.Errorf("error deleting resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("resume")
	}
	return nil
}

// DeleteByUserID removes the resume of a user, if any
func (r *PostgresResumeRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("resumes").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete resumes query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user resume")
		return fmt.Errorf("error deleting resume of user: %w", err)
	}
	return nil
}
