// Copyright (c) 2026 DSMovie. All rights reserved.

package validate_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Matrix", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "UNPROCESSABLE", ae.Code)
				assert.Equal(t, http.StatusUnprocessableEntity, ae.HTTPStatus)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_MinLen checks the minimum length rule used for movie titles.
*/
func TestValidator_MinLen(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		min     int
		isValid bool
	}{
		{"exact_min", "Ran", 3, true},
		{"above_min", "Test Movie", 3, true},
		{"below_min", "Te", 3, false},
		{"unicode_runes", "日本語", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.MinLen("title", tt.value, tt.min)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_RangeFloat checks the inclusive numeric range rule used for scores.
*/
func TestValidator_RangeFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		isValid bool
	}{
		{"lower_bound", 0, true},
		{"upper_bound", 5, true},
		{"mid_range", 3.5, true},
		{"below_range", -1, false},
		{"above_range", 5.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.RangeFloat("score", tt.value, 0, 5)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_URL checks the URL format rule used for movie images.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https", "https://www.themoviedb.org/t/p/w533_and_h300_bestv2/poster.jpg", true},
		{"http", "http://example.com/a.png", true},
		{"no_scheme", "example.com/a.png", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("image", tt.value)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chaining verifies that multiple failures accumulate into one error.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").RangeFloat("score", 9, 0, 5)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 2)
}
