package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidSpec, "%s must be finite, got %v", field, v)
	}
	return nil
}

// ValidatePositive rejects values that are not strictly positive.
func ValidatePositive(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidSpec, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative rejects negative values.
func ValidateNonNegative(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidSpec, "%s must not be negative, got %v", field, v)
	}
	return nil
}

// labelSegmentRegex matches a single label segment (profile, row, suffix).
var labelSegmentRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateLabelSegment validates one underscore-free segment of a keycap label.
// Labels double as file names, so segments are restricted to ASCII letters
// and digits.
func ValidateLabelSegment(field, s string) error {
	if s == "" {
		return New(ErrCodeInvalidLabel, "%s cannot be empty", field)
	}
	if len(s) > 64 {
		return New(ErrCodeInvalidLabel, "%s too long (max 64 characters)", field)
	}
	if !labelSegmentRegex.MatchString(s) {
		return New(ErrCodeInvalidLabel, "%s must be alphanumeric: %q", field, s)
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
