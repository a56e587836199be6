package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"simple", "john_doe", true},
		{"allowed punctuation", "j.doe+cs@uni-1", true},
		{"empty", "", false},
		{"space", "john doe", false},
		{"too long", strings.Repeat("a", maxUsernameLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := fieldErrors{}
			validateUsername(errs, tt.username)
			assert.Equal(t, tt.valid, errs.err() == nil)
		})
	}
}

func TestValidateYears(t *testing.T) {
	errs := fieldErrors{}
	validateYears(errs, 2020, nil)
	validateYears(errs, 2020, intPtr(2020))
	validateYears(errs, 2020, intPtr(2031))
	assert.NoError(t, errs.err())

	validateYears(errs, 2020, intPtr(2019))
	assert.Contains(t, errs, "end_year")
}

func TestOptionalText(t *testing.T) {
	assert.Nil(t, optionalText(nil))
	assert.Nil(t, optionalText(strPtr("   ")))
	assert.Equal(t, "hi", *optionalText(strPtr("  hi ")))
}
