package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength bounds stop and bus names accepted from untrusted input.
const MaxNameLength = 256

// ValidateName checks a stop or bus name received from an outer surface
// (HTTP path, interactive input). kind is used in the message only.
//
// Rules:
//   - No empty or all-blank names
//   - No control characters
//   - Maximum length of [MaxNameLength] bytes
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "%s name too long (max %d characters)", kind, MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "%s name contains invalid control characters", kind)
		}
	}
	return nil
}
