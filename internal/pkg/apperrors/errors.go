package apperrors

import (
	"errors"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUsernameAlreadyExists = errors.New("a user with that username already exists")
	ErrEmailAlreadyExists    = errors.New("a user with that email already exists")
	ErrUsernameImmutable     = errors.New("username cannot be changed")
)

// Dependent record errors
var (
	ErrResumeAlreadyExists = errors.New("user already has a resume")
	ErrUserHasRecords      = errors.New("user still owns records")
)

// Connection errors
var (
	ErrAlreadyConnected   = errors.New("already connected")
	ErrRequestAlreadySent = errors.New("connection request already sent")
	ErrConnectionSelf     = errors.New("cannot connect to yourself")
	ErrConnectionNotFound = errors.New("connection request not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a uniqueness violation on a single field. The result
// matches both ErrConflict and cause.
func NewConflictError(field string, cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrConflict, cause),
		Message: cause.Error(),
		Details: map[string]interface{}{field: cause.Error()},
	}
}

// NewConflictFieldsError creates one uniqueness violation covering several
// fields. The result matches ErrConflict and every cause.
func NewConflictFieldsError(causes map[string]error) error {
	if len(causes) == 1 {
		for field, cause := range causes {
			return NewConflictError(field, cause)
		}
	}

	fields := make([]string, 0, len(causes))
	for field := range causes {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	errs := []error{ErrConflict}
	messages := make([]string, 0, len(fields))
	details := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		cause := causes[field]
		errs = append(errs, cause)
		messages = append(messages, cause.Error())
		details[field] = cause.Error()
	}
	return &CustomError{
		Err:     errors.Join(errs...),
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying field-level messages
func NewValidationError(fields map[string]string) error {
	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: "validation failed",
		Details: details,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// FieldDetails returns the field-level details attached to err, if any.
func FieldDetails(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
