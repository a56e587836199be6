package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

const maxUsernameLength = 150

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// fieldErrors collects field-level validation messages
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError(f)
}

func validateUsername(errs fieldErrors, username string) {
	switch {
	case username == "":
		errs.add("username", "this field is required")
	case len(username) > maxUsernameLength:
		errs.add("username", fmt.Sprintf("ensure this field has no more than %d characters", maxUsernameLength))
	case !usernamePattern.MatchString(username):
		errs.add("username", "enter a valid username; it may contain only letters, numbers and @/./+/-/_ characters")
	}
}

func validateEmail(errs fieldErrors, email string) {
	if email == "" {
		errs.add("email", "this field is required")
		return
	}
	if !emailPattern.MatchString(email) {
		errs.add("email", "enter a valid email address")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateYears rejects an end year before the start year
func validateYears(errs fieldErrors, start int, end *int) {
	if end != nil && *end < start {
		errs.add("end_year", "end year must not be before start year")
	}
}

// parseDate parses a YYYY-MM-DD value for field
func parseDate(errs fieldErrors, field, value string) time.Time {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		errs.add(field, "date has wrong format, use YYYY-MM-DD")
	}
	return t
}

// optionalText trims a value and maps an empty result to nil
func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

var timeNow = time.Now
