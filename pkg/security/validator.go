package security

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// CanonicalIDLength is the length of a hyphenated UUID (8-4-4-4-12)
	CanonicalIDLength = 36
)

// ErrInvalidID is returned for identifiers that are not in canonical textual form
var ErrInvalidID = errors.New("invalid identifier")

// canonicalIDPattern accepts only the hyphenated hexadecimal form.
// uuid.Parse alone also accepts braces, urn:uuid: prefixes and the 32-char form.
var canonicalIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ParseUserID validates a raw path segment and returns the identifier it encodes.
// Surrounding whitespace is not tolerated.
func ParseUserID(raw string) (uuid.UUID, error) {
	if len(raw) != CanonicalIDLength {
		return uuid.Nil, ErrInvalidID
	}

	if !canonicalIDPattern.MatchString(raw) {
		return uuid.Nil, ErrInvalidID
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}

	return id, nil
}

// IsBlank reports whether s is empty after trimming surrounding whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
