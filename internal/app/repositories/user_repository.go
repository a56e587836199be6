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

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

var userColumns = []string{
	"id", "username", "email", "password", "is_student", "is_alumni", "is_faculty",
	"about", "linkedin", "github", "profile_picture", "created_at", "updated_at",
}

// PostgresUserRepository handles user database operations
type PostgresUserRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, sb: statementBuilder()}
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.IsStudent, &u.IsAlumni, &u.IsFaculty,
		&u.About, &u.LinkedIn, &u.GitHub, &u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func mapUserWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, usernameConstraint):
		return apperrors.NewConflictError("username", apperrors.ErrUsernameAlreadyExists)
	case dberrors.IsDuplicateConstraintError(err, emailConstraint):
		return apperrors.NewConflictError("email", apperrors.ErrEmailAlreadyExists)
	}
	return nil
}

// Create inserts a user and fills in its id and timestamps
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "email", "password", "is_student", "is_alumni", "is_faculty",
			"about", "linkedin", "github", "profile_picture").
		Values(user.Username, user.Email, user.Password, user.IsStudent, user.IsAlumni, user.IsFaculty,
			user.About, user.LinkedIn, user.GitHub, user.ProfilePicture).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if mapped := mapUserWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound("user")
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername retrieves a user by username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// List retrieves all users in insertion order
func (r *PostgresUserRepository) List(ctx context.Context) ([]*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

// Search finds users whose username or email contains the term, newest first
func (r *PostgresUserRepository) Search(ctx context.Context, query models.UserQuery) ([]*models.User, error) {
	q := newestFirst(r.sb.Select(userColumns...).From("users"), "id", query.Limit)
	if query.Term != "" {
		pattern := "%" + likeEscaper.Replace(query.Term) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"username": pattern},
			squirrel.ILike{"email": pattern},
		})
	}
	if query.ExcludeID != nil {
		q = q.Where(squirrel.NotEq{"id": *query.ExcludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search users query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

func (r *PostgresUserRepository) query(ctx context.Context, sql string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing users query")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update persists the mutable fields of a user. Username is never written.
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"email":           user.Email,
			"is_student":      user.IsStudent,
			"is_alumni":       user.IsAlumni,
			"is_faculty":      user.IsFaculty,
			"about":           user.About,
			"linkedin":        user.LinkedIn,
			"github":          user.GitHub,
			"profile_picture": user.ProfilePicture,
			"updated_at":      squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": user.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errNotFound("user")
		}
		if mapped := mapUserWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error executing update user query")
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// Delete removes a user. Dependent records must be removed first; a record
// still referencing the user is a conflict.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			logger.Warn().Int64("userID", id).Msg("User delete blocked by dependent records")
			return apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrUserHasRecords.Error())
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error executing delete user query")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound("user")
	}
	return nil
}

// Exists reports whether a user with id exists
func (r *PostgresUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").From("users").Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build user exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error checking user existence")
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}
