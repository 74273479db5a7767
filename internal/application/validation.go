package application

import (
	"fmt"
	"strings"

	"presetdeck/internal/domain"
)

// MaxNameLength bounds category and preset names
const MaxNameLength = 100

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "subjectID" -> "subject ID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "subjectID" -> "subject ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"subjectID": "subject ID",
		"category":  "category",
		"name":      "name",
		"query":     "query",
		"path":      "path",
		"direction": "direction",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateName checks a category or preset name: required, bounded, and
// free of the "/" separator used in item IDs.
func ValidateName(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	displayName := formatFieldName(fieldName)
	if len(value) > MaxNameLength {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be at most %d characters", displayName, MaxNameLength),
		}
	}
	if strings.Contains(value, "/") {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must not contain '/'", displayName),
		}
	}
	return nil
}

// ValidateDirection checks that a direction is a single forward or backward step
func ValidateDirection(d domain.Direction) error {
	if !d.Valid() {
		return &ValidationError{
			Field:   "direction",
			Message: fmt.Sprintf("expected next or previous, got: %d", int(d)),
		}
	}
	return nil
}
