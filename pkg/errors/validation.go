package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateDimensions rejects chart sizes that cannot describe a drawing
// surface. Zero is allowed (the caller decides on a default), negative or
// non-finite values are not.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidOption, "chart dimensions must be finite")
		}
		if v < 0 {
			return New(ErrCodeInvalidOption, "chart dimensions cannot be negative (got %gx%g)", width, height)
		}
	}

	const maxDimension = 20000
	if width > maxDimension || height > maxDimension {
		return New(ErrCodeInvalidOption, "chart dimensions too large (max %d px)", maxDimension)
	}
	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS keyword colors and functional notation.
var namedColorRegex = regexp.MustCompile(`^([a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s/a-z()-]+\))$`)

// ValidateColor accepts the color notations the SVG sink writes verbatim.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidOption, "color cannot be empty")
	}
	if strings.ContainsAny(color, `<>"'&`) {
		return New(ErrCodeInvalidOption, "color contains invalid characters: %q", color)
	}
	if !hexColorRegex.MatchString(color) && !namedColorRegex.MatchString(color) {
		return New(ErrCodeInvalidOption, "invalid color: %q", color)
	}
	return nil
}

// ValidatePalette validates every color of a palette.
func ValidatePalette(colors []string) error {
	for _, c := range colors {
		if err := ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKey validates a dataset field name referenced by a document.
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidDocument, "field name cannot be empty")
	}
	if len(key) > 128 {
		return New(ErrCodeInvalidDocument, "field name too long (max 128 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "field name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a data file path referenced from inside a document.
// Referenced files must live next to (or below) the document.
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
