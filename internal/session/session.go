// Package session mints and validates the opaque conversation handles the
// widget stores client-side. Handles are plain UUIDv4 strings; nothing is
// ever derived from their value.
package session

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/chatdesk/chatdesk/internal/domain"
)

// Strict UUIDv4 textual grammar: 8-4-4-4-12 hex groups, version nibble 4,
// variant nibble in {8,9,a,b}. No trimming, no other normalization.
var uuidV4Pattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`,
)

// New returns a fresh cryptographically random session identifier.
func New() domain.SessionID {
	return domain.SessionID(uuid.NewString())
}

// IsValid reports whether candidate matches the exact UUIDv4 textual
// grammar. Anything else (wrong length, wrong version or variant nibble,
// non-hex characters, surrounding whitespace) is rejected.
func IsValid(candidate string) bool {
	return uuidV4Pattern.MatchString(candidate)
}
