package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length limits for identifiers accepted from clients.
const (
	MaxOwnerLength    = 128
	MaxWidgetIDLength = 64
)

// ValidateOwner validates the owner identifier a layout is stored under.
// Owners become part of storage keys and file names, so the rules are
// conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 128 characters
func ValidateOwner(owner string) error {
	if owner == "" {
		return New(ErrCodeInvalidOwner, "owner cannot be empty")
	}

	if len(owner) > MaxOwnerLength {
		return New(ErrCodeInvalidOwner, "owner too long (max %d characters)", MaxOwnerLength)
	}

	for _, r := range owner {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOwner, "owner contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(owner, pattern) {
			return New(ErrCodeInvalidOwner, "owner contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateWidgetID validates a widget identifier. Ids are opaque strings, so
// only what cannot be stored or displayed is rejected:
//   - No empty ids
//   - No invalid UTF-8
//   - No control characters
//   - Maximum length of 64 bytes
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidWidget, "widget id cannot be empty")
	}

	if len(id) > MaxWidgetIDLength {
		return New(ErrCodeInvalidWidget, "widget id too long (max %d characters)", MaxWidgetIDLength)
	}

	if !utf8.ValidString(id) {
		return New(ErrCodeInvalidWidget, "widget id is not valid UTF-8: %q", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWidget, "widget id contains control characters: %q", id)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
