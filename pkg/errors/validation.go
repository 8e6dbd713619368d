package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateExportFilename validates the filename offered for exported trees.
// It ensures the name is a simple .json basename that browsers and the
// filesystem accept without surprises.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 255 characters
//   - No control characters
//   - No path separators
//   - No hidden files (leading dot)
//   - Must end in .json
func ValidateExportFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "export filename cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "export filename too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "export filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "export filename cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "export filename cannot be a hidden file")
	}

	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return New(ErrCodeInvalidPath, "export filename must end in .json: %q", name)
	}

	return nil
}

// ValidateOutputPath validates a local output path for rendered artifacts.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
