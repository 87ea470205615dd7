package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatdesk/chatdesk/internal/session"
)

func TestNewProducesValidIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := string(session.New())
		require.True(t, session.IsValid(id), "generated id %q failed validation", id)
		require.False(t, seen[id], "generated id %q repeated", id)
		seen[id] = true
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"lowercase v4", "6ba7b814-9dad-41d1-80b4-00c04fd430c8", true},
		{"uppercase hex", "6BA7B814-9DAD-41D1-80B4-00C04FD430C8", true},
		{"variant 9", "00000000-0000-4000-9000-000000000000", true},
		{"variant a", "00000000-0000-4000-a000-000000000000", true},
		{"variant b", "00000000-0000-4000-b000-000000000000", true},
		{"empty", "", false},
		{"too short", "6ba7b814-9dad-41d1-80b4-00c04fd430", false},
		{"too long", "6ba7b814-9dad-41d1-80b4-00c04fd430c8ff", false},
		{"wrong version nibble", "6ba7b814-9dad-11d1-80b4-00c04fd430c8", false},
		{"wrong variant nibble", "6ba7b814-9dad-41d1-70b4-00c04fd430c8", false},
		{"non-hex characters", "6ba7b814-9dad-41d1-80b4-00c04fd430zz", false},
		{"missing dashes", "6ba7b8149dad41d180b400c04fd430c8", false},
		{"leading space", " 6ba7b814-9dad-41d1-80b4-00c04fd430c8", false},
		{"trailing space", "6ba7b814-9dad-41d1-80b4-00c04fd430c8 ", false},
		{"braced form", "{6ba7b814-9dad-41d1-80b4-00c04fd430c8}", false},
		{"urn form", "urn:uuid:6ba7b814-9dad-41d1-80b4-00c04fd430c8", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.IsValid(tc.candidate))
		})
	}
}
