// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/plaud-export/pkg/types"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		fallback string
		want     string
	}{
		{"plain", "standup notes", "id1", "standup notes"},
		{"strips punctuation", "a/b:c?d", "id1", "abcd"},
		{"keeps allowed punctuation", "a-b_c.d", "id1", "a-b_c.d"},
		{"unicode letters survive", "Запись 12", "id1", "Запись 12"},
		{"empty falls back", "", "id1", "id1"},
		{"all stripped falls back", "///", "id1", "id1"},
		{"trims edges", "  note  ", "id1", "note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.filename, tt.fallback))
		})
	}
}

func TestPersistBucketsByStartTime(t *testing.T) {
	root := t.TempDir()
	sink := NewDirSink(root, "daily", false)

	start := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.Local)
	meta := types.RecordMeta{ID: "r1", Filename: "standup", StartTime: start.UnixMilli()}
	doc := &types.RenderedDocument{Title: "standup", Sections: []string{"body"}}

	require.NoError(t, sink.Persist(meta, doc))

	path := filepath.Join(root, "daily", "2024", "03", "standup.md")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# standup\n\nbody", string(data))
	assert.Equal(t, path, sink.DocumentPath(meta))
}

func TestPersistUnknownBucket(t *testing.T) {
	root := t.TempDir()
	sink := NewDirSink(root, "daily", false)

	meta := types.RecordMeta{ID: "r1", Filename: "undated"}
	require.NoError(t, sink.Persist(meta, &types.RenderedDocument{Title: "t", Sections: []string{"x"}}))

	_, err := os.Stat(filepath.Join(root, "daily", "unknown", "unknown", "undated.md"))
	assert.NoError(t, err)
}

func TestPersistOverwrites(t *testing.T) {
	root := t.TempDir()
	sink := NewDirSink(root, "daily", false)
	meta := types.RecordMeta{ID: "r1", Filename: "note"}

	require.NoError(t, sink.Persist(meta, &types.RenderedDocument{Title: "t", Sections: []string{"old"}}))
	require.NoError(t, sink.Persist(meta, &types.RenderedDocument{Title: "t", Sections: []string{"new"}}))

	data, err := os.ReadFile(sink.DocumentPath(meta))
	require.NoError(t, err)
	assert.Contains(t, string(data), "new")
	assert.NotContains(t, string(data), "old")
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	sink := NewDirSink(root, "daily", false)
	meta := types.RecordMeta{ID: "r1", Filename: "note"}
	require.NoError(t, sink.Persist(meta, &types.RenderedDocument{Title: "t", Sections: []string{"x"}}))

	entries, err := os.ReadDir(filepath.Dir(sink.DocumentPath(meta)))
	require.NoError(t, err)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".export-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestPersistWritesSidecar(t *testing.T) {
	root := t.TempDir()
	sink := NewDirSink(root, "daily", true)

	meta := types.RecordMeta{ID: "r1", Filename: "standup", Duration: 65000, StartTime: time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local).UnixMilli()}
	require.NoError(t, sink.Persist(meta, &types.RenderedDocument{Title: "t", Sections: []string{"x"}}))

	data, err := os.ReadFile(filepath.Join(root, ".metadata", "r1.yaml"))
	require.NoError(t, err)

	var got sidecar
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, "daily", got.Folder)
	assert.Equal(t, filepath.Join("daily", "2024", "03", "standup.md"), got.Path)
	assert.Equal(t, int64(65000), got.Duration)
}
