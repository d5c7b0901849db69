// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package token

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeToken(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".token")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bare token", "abc123", "abc123"},
		{"trailing newline", "abc123\n", "abc123"},
		{"bearer prefix stripped", "bearer abc123", "abc123"},
		{"bearer prefix case-insensitive", "Bearer abc123\n", "abc123"},
		{"surrounding whitespace", "  abc123  \n", "abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeToken(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(writeToken(t, "   \n"))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Load(writeToken(t, "bearer \n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
