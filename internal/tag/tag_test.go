// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tag

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFirstTag(t *testing.T) {
	tests := []struct {
		name    string
		content string
		root    string
		want    string
	}{
		{
			name:    "no tag line inserts one",
			content: "# Note\n\nbody\n",
			root:    "daily",
			want:    "tag #daily\n\n# Note\n\nbody\n",
		},
		{
			name:    "already first is untouched",
			content: "tag #daily #work\n\nbody\n",
			root:    "daily",
			want:    "tag #daily #work\n\nbody\n",
		},
		{
			name:    "case-insensitive match is untouched",
			content: "tag #Daily\n\nbody\n",
			root:    "daily",
			want:    "tag #Daily\n\nbody\n",
		},
		{
			name:    "moves tag to front",
			content: "tag #work #daily #misc\n\nbody\n",
			root:    "daily",
			want:    "tag #daily #work #misc\n\nbody\n",
		},
		{
			name:    "prepends to other tags",
			content: "tag #work\n\nbody\n",
			root:    "daily",
			want:    "tag #daily #work\n\nbody\n",
		},
		{
			name:    "tag line without hashes is replaced",
			content: "tag plain words\n\nbody\n",
			root:    "daily",
			want:    "tag #daily\n\nbody\n",
		},
		{
			name:    "tag line below heading",
			content: "# Title\ntag #work\n\nbody\n",
			root:    "daily",
			want:    "# Title\ntag #daily #work\n\nbody\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnsureFirstTag(tt.content, tt.root))
		})
	}
}

func TestEnsureFirstTagIdempotent(t *testing.T) {
	content := "tag #work #misc\n\nbody\n"
	once := EnsureFirstTag(content, "daily")
	twice := EnsureFirstTag(once, "daily")
	assert.Equal(t, once, twice)
}

func TestApply(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("daily/2024/03/a.md", "# A\n\nbody\n")
	write("work/b.md", "tag #work\n\nbody\n")
	write("toplevel.md", "# skip me\n")
	write("daily/ignore.txt", "not markdown")

	var out bytes.Buffer
	summary, err := Apply(root, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, summary.Failed)

	a, err := os.ReadFile(filepath.Join(root, "daily/2024/03/a.md"))
	require.NoError(t, err)
	assert.Equal(t, "tag #daily\n\n# A\n\nbody\n", string(a))

	// Already tagged with its folder: unchanged.
	b, err := os.ReadFile(filepath.Join(root, "work/b.md"))
	require.NoError(t, err)
	assert.Equal(t, "tag #work\n\nbody\n", string(b))

	// Top-level files have no folder to tag with.
	top, err := os.ReadFile(filepath.Join(root, "toplevel.md"))
	require.NoError(t, err)
	assert.Equal(t, "# skip me\n", string(top))
}
