package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxAccessorLength bounds accessors accepted from outer surfaces (HTTP, CLI).
const maxAccessorLength = 4096

// ValidateAccessor validates an accessor string received from an outer surface.
// It does not check the accessor grammar (decoding is total); it only rejects
// input that can never address a value:
//   - No empty accessors (the root cannot be edited through an accessor)
//   - No control characters or null bytes
//   - Maximum length of 4096 bytes
func ValidateAccessor(acc string) error {
	if acc == "" {
		return New(ErrCodeInvalidAccessor, "accessor cannot be empty")
	}

	if len(acc) > maxAccessorLength {
		return New(ErrCodeInvalidAccessor, "accessor too long (max %d characters)", maxAccessorLength)
	}

	for _, r := range acc {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAccessor, "accessor contains invalid control characters")
		}
	}

	return nil
}

// ValidateFilePath validates a document file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
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

	return nil
}

// documentIDRegex matches identifiers usable as Redis key suffixes and Mongo _id values.
var documentIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateDocumentID validates the identifier a persistence backend stores a
// document under. IDs end up in Redis keys and Mongo filters, so they are kept
// to a conservative character set.
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidConfig, "document id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidConfig, "document id too long (max 256 characters)")
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidConfig, "document id cannot contain %q", "..")
	}
	if !documentIDRegex.MatchString(id) {
		return New(ErrCodeInvalidConfig, "invalid document id: %q", id)
	}
	return nil
}
