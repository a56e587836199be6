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

var certificateColumns = []string{"id", "user_id", "title", "issued_by", "issue_date", "image", "certificate_link", "created_at"}

// PostgresCertificateRepository handles certificate database operations
type PostgresCertificateRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresCertificateRepository creates a new PostgresCertificateRepository
func NewPostgresCertificateRepository(db DBTX) *PostgresCertificateRepository {
	return &PostgresCertificateRepository{db: db, sb: statementBuilder()}
}

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	c := &models.Certificate{}
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.IssuedBy, &c.IssueDate, &c.Image, &c.CertificateLink, &c.CreatedAt)
	return c, err
}

// Create inserts a certificate
func (r *PostgresCertificateRepository) Create(ctx context.Context, certificate *models.Certificate) error {
	sql, args, err := r.sb.Insert("certificates").
		Columns("user_id", "title", "issued_by", "issue_date", "image", "certificate_link").
		Values(certificate.UserID, certificate.Title, certificate.IssuedBy, certificate.IssueDate,
			certificate.Image, certificate.CertificateLink).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create certificate query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&certificate.ID, &certificate.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return errOwnerNotFound()
		}
		logger.Error().Err(err).Int64("userID", certificate.UserID).Msg("Error executing create certificate query")
		return fmt.Errorf("error creating certificate: %w", err)
	}
	return nil
}

// GetByID retrieves a certificate by ID
func (r *PostgresCertificateRepository) GetByID(ctx context.Context, id int64) (*models.Certificate, error) {
	sql, args, err := r.sb.Select(certificateColumns...).From("certificates").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get certificate query: %w", err)
	}

	certificate, err := scanCertificate(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound("certificate")
		}
		logger.Error().Err(err).Int64("certificateID", id).Msg("Error scanning certificate row")
		return nil, fmt.Errorf("error getting certificate by ID: %w", err)
	}
	return certificate, nil
}

// List retrieves certificates, optionally only those of one user
func (r *PostgresCertificateRepository) List(ctx context.Context, userID *int64) ([]*models.Certificate, error) {
	sql, args, err := ownerFilter(r.sb.Select(certificateColumns...).From("certificates"), userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list certificates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list certificates query")
		return nil, fmt.Errorf("error querying certificates: %w", err)
	}
	defer rows.Close()

	items := []*models.Certificate{}
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning certificate row: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating certificate rows: %w", err)
	}
	return items, nil
}

// Update persists a certificate's fields
func (r *PostgresCertificateRepository) Update(ctx context.Context, certificate *models.Certificate) error {
	sql, args, err := r.sb.Update("certificates").
		SetMap(map[string]interface{}{
			"title":            certificate.Title,
			"issued_by":        certificate.IssuedBy,
			"issue_date":       certificate.IssueDate,
			"image":            certificate.Image,
			"certificate_link": certificate.CertificateLink,
		}).
		Where(squirrel.Eq{"id": certificate.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update certificate query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("certificateID", certificate.ID).Msg("Error executing update certificate query")
		return fmt.Errorf("error updating certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("certificate")
	}
	return nil
}

// Delete removes a certificate
func (r *PostgresCertificateRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("certificates").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete certificate query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("certificateID", id).Msg("Error executing delete certificate query")
		return fmt.Errorf("error deleting certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("certificate")
	}
	return nil
}

// DeleteByUserID removes every certificate of a user
func (r *PostgresCertificateRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("certificates").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete certificates query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user certificates")
		return fmt.Errorf("error deleting certificates of user: %w", err)
	}
	return nil
}
