package errors

import (
	"strings"
	"unicode"
)

// ValidateName validates a scene or box name.
// Names appear in SVG ids, cache keys and log lines, so they are kept to a
// conservative character set:
//   - No empty names
//   - No control characters or whitespace
//   - No quotes or angle brackets
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidScene, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidScene, "name %q contains whitespace or control characters", name)
		}
	}

	if strings.ContainsAny(name, `"'<>&`) {
		return New(ErrCodeInvalidScene, "name %q contains markup characters", name)
	}

	return nil
}

// ValidatePath validates a scene file path for safety.
// It is applied to paths that arrive over the playground server, not to
// paths typed on the command line.
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
			return New(ErrCodeInvalidPath, "path contains invalid characters")
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
