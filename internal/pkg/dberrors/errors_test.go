package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	assert.True(t, IsDuplicateConstraintError(err, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(err, "users_username_key"))
	assert.True(t, IsDuplicateKeyError(err))
	assert.False(t, IsForeignKeyViolation(err))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
	assert.False(t, IsDuplicateKeyError(nil))
}

func TestIsForeignKeyConstraint(t *testing.T) {
	err := fmt.Errorf("insert comment: %w", &pgconn.PgError{Code: "23503", ConstraintName: "comments_post_id_fkey"})

	assert.True(t, IsForeignKeyConstraint(err, "comments_post_id_fkey"))
	assert.False(t, IsForeignKeyConstraint(err, "comments_user_id_fkey"))
	assert.False(t, IsForeignKeyConstraint(&pgconn.PgError{Code: "23505", ConstraintName: "comments_post_id_fkey"}, "comments_post_id_fkey"))
}
