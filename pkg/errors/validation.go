package errors

import (
	"strings"
	"unicode"
)

// maxRefLength bounds asset references. Data URIs for logos can be large,
// so they are checked separately against maxDataRefLength.
const (
	maxRefLength     = 2048
	maxDataRefLength = 8 << 20
)

// ValidateRef validates an asset reference (logo or background image).
// Accepted forms are http(s) URLs, data: URIs, and local file paths.
// An empty reference is valid; callers treat it as "no asset".
func ValidateRef(ref string) error {
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "data:") {
		if len(ref) > maxDataRefLength {
			return New(ErrCodeInvalidRef, "data URI too large (max %d bytes)", maxDataRefLength)
		}
		if !strings.Contains(ref, ",") {
			return New(ErrCodeInvalidRef, "malformed data URI")
		}
		return nil
	}
	if len(ref) > maxRefLength {
		return New(ErrCodeInvalidRef, "reference too long (max %d characters)", maxRefLength)
	}
	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRef, "reference contains invalid control characters")
		}
	}
	if strings.Contains(ref, "://") {
		return ValidateURL(ref)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidRef, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidRef, "URL must use http or https scheme")
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// It is used for paths that must stay inside a base directory, such as
// asset references resolved by the file resolver in server mode.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidatePageNumber checks that n is a 1-based page number within total.
func ValidatePageNumber(n, total int) error {
	if n < 1 || n > total {
		return New(ErrCodePageNotFound, "page %d out of range (1-%d)", n, total)
	}
	return nil
}
