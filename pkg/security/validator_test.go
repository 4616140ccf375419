package security

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserID(t *testing.T) {
	valid := uuid.New()

	tests := []struct {
		name        string
		raw         string
		expectError bool
		expected    uuid.UUID
	}{
		{
			name:     "canonical lowercase",
			raw:      valid.String(),
			expected: valid,
		},
		{
			name:     "canonical uppercase",
			raw:      strings.ToUpper(valid.String()),
			expected: valid,
		},
		{
			name:     "nil uuid is syntactically valid",
			raw:      "00000000-0000-0000-0000-000000000000",
			expected: uuid.Nil,
		},
		{
			name:        "empty",
			raw:         "",
			expectError: true,
		},
		{
			name:        "numeric id",
			raw:         "123",
			expectError: true,
		},
		{
			name:        "not hex",
			raw:         "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz",
			expectError: true,
		},
		{
			name:        "no hyphens",
			raw:         strings.ReplaceAll(valid.String(), "-", ""),
			expectError: true,
		},
		{
			name:        "braced",
			raw:         "{" + valid.String() + "}",
			expectError: true,
		},
		{
			name:        "urn prefix",
			raw:         "urn:uuid:" + valid.String(),
			expectError: true,
		},
		{
			name:        "misplaced hyphen",
			raw:         "0000000-00000-0000-0000-000000000000",
			expectError: true,
		},
		{
			name:        "surrounding whitespace",
			raw:         " " + valid.String()[1:],
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseUserID(tt.raw)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidID)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("\t\n"))
	assert.False(t, IsBlank(" Ada "))
}
