package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConflictFieldsError(t *testing.T) {
	err := NewConflictFieldsError(map[string]error{
		"username": ErrUsernameAlreadyExists,
		"email":    ErrEmailAlreadyExists,
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Equal(t, ErrEmailAlreadyExists.Error()+"; "+ErrUsernameAlreadyExists.Error(), err.Error())

	details := FieldDetails(err)
	require.Len(t, details, 2)
	assert.Equal(t, ErrEmailAlreadyExists.Error(), details["email"])
	assert.Equal(t, ErrUsernameAlreadyExists.Error(), details["username"])
}

func TestNewConflictFieldsErrorSingleCause(t *testing.T) {
	err := NewConflictFieldsError(map[string]error{"email": ErrEmailAlreadyExists})

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrUsernameAlreadyExists)
	assert.Equal(t, map[string]interface{}{"email": ErrEmailAlreadyExists.Error()}, FieldDetails(err))
}

func TestFieldDetailsOnPlainError(t *testing.T) {
	assert.Nil(t, FieldDetails(errors.New("plain")))
	assert.Nil(t, FieldDetails(ErrConflict))
}
