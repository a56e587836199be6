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

const connectionPairConstraint = "connections_pair_key"

var connectionColumns = []string{"id", "requester_id", "addressee_id", "status", "created_at", "accepted_at"}

// PostgresConnectionRepository handles connection database operations
type PostgresConnectionRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresConnectionRepository creates a new PostgresConnectionRepository
func NewPostgresConnectionRepository(db DBTX) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db, sb: statementBuilder()}
}

func scanConnection(row pgx.Row) (*models.Connection, error) {
	c := &models.Connection{}
	err := row.Scan(&c.ID, &c.RequesterID, &c.AddresseeID, &c.Status, &c.CreatedAt, &c.AcceptedAt)
	return c, err
}

func involving(userID int64) squirrel.Or {
	return squirrel.Or{squirrel.Eq{"requester_id": userID}, squirrel.Eq{"addressee_id": userID}}
}

// Create inserts a connection. A second connection for the same pair is a conflict.
func (r *PostgresConnectionRepository) Create(ctx context.Context, connection *models.Connection) error {
	sql, args, err := r.sb.Insert("connections").
		Columns("requester_id", "addressee_id", "status").
		Values(connection.RequesterID, connection.AddresseeID, connection.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create connection query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&connection.ID, &connection.CreatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, connectionPairConstraint):
			return apperrors.NewConflictError("user", apperrors.ErrRequestAlreadySent)
		case dberrors.IsForeignKeyViolation(err):
			return errOwnerNotFound()
		}
		logger.Error().Err(err).Int64("requesterID", connection.RequesterID).Msg("Error executing create connection query")
		return fmt.Errorf("error creating connection: %w", err)
	}
	return nil
}

// GetBetween finds the connection of a pair in either direction
func (r *PostgresConnectionRepository) GetBetween(ctx context.Context, userA, userB int64) (*models.Connection, error) {
	sql, args, err := r.sb.Select(connectionColumns...).From("connections").
		Where(squirrel.Or{
			squirrel.Eq{"requester_id": userA, "addressee_id": userB},
			squirrel.Eq{"requester_id": userB, "addressee_id": userA},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get connection query: %w", err)
	}

	connection, err := scanConnection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound("connection")
		}
		logger.Error().Err(err).Int64("userA", userA).Int64("userB", userB).Msg("Error scanning connection row")
		return nil, fmt.Errorf("error getting connection: %w", err)
	}
	return connection, nil
}

// List retrieves the connections of a user with the given status
func (r *PostgresConnectionRepository) List(ctx context.Context, userID int64, status models.ConnectionStatus) ([]*models.Connection, error) {
	return r.list(ctx, squirrel.And{involving(userID), squirrel.Eq{"status": status}})
}

// ListIncoming retrieves the pending requests addressed to a user
func (r *PostgresConnectionRepository) ListIncoming(ctx context.Context, userID int64) ([]*models.Connection, error) {
	return r.list(ctx, squirrel.Eq{"addressee_id": userID, "status": models.ConnectionPending})
}

func (r *PostgresConnectionRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Connection, error) {
	sql, args, err := r.sb.Select(connectionColumns...).From("connections").Where(where).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list connections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list connections query")
		return nil, fmt.Errorf("error querying connections: %w", err)
	}
	defer rows.Close()

	connections := []*models.Connection{}
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning connection row: %w", err)
		}
		connections = append(connections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connection rows: %w", err)
	}
	return connections, nil
}

// Accept turns a pending request into a connection
func (r *PostgresConnectionRepository) Accept(ctx context.Context, connection *models.Connection) error {
	sql, args, err := r.sb.Update("connections").
		Set("status", models.ConnectionAccepted).
		Set("accepted_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": connection.ID, "status": models.ConnectionPending}).
		Suffix("RETURNING accepted_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build accept connection query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&connection.AcceptedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewCustomError(apperrors.ErrResourceNotFound, apperrors.ErrConnectionNotFound.Error())
		}
		logger.Error().Err(err).Int64("connectionID", connection.ID).Msg("Error executing accept connection query")
		return fmt.Errorf("error accepting connection: %w", err)
	}
	connection.Status = models.ConnectionAccepted
	return nil
}

// Delete removes a connection or pending request
func (r *PostgresConnectionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("connections").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete connection query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("connectionID", id).Msg("Error executing delete connection query")
		return fmt.Errorf("error deleting connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("connection")
	}
	return nil
}

// DeleteByUserID removes every connection and request a user is part of
func (r *PostgresConnectionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("connections").Where(involving(userID)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete connections query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user connections")
		return fmt.Errorf("error deleting connections of user: %w", err)
	}
	return nil
}
