package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLength bounds batch identifiers, which become file names.
const maxIdentifierLength = 200

// ValidateIdentifier validates a batch identifier before it is used as an
// output file name (the "<identifier>.<extension>" convention).
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 200 characters
func ValidateIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidIdentifier, "identifier cannot be empty")
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidIdentifier, "identifier too long (max %d characters)", maxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIdentifier, "identifier contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidIdentifier, "identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateUnitInterval checks that v lies in [0, 1].
// It is used by strict config validation; the render options themselves
// silently ignore out-of-range values.
func ValidateUnitInterval(name string, v float64) error {
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be between 0 and 1, got %g", name, v)
	}
	return nil
}
