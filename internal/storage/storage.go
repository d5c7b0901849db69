// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage writes rendered documents into the local export tree,
// bucketed by folder, year, and month. Writes go through a temp file and
// rename, so a crashed run never leaves a truncated document that a later
// archive decision could mistake for a durable copy.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/plaud-export/pkg/types"
)

const (
	metadataDir  = ".metadata"
	unknownLabel = "unknown"
)

// DirSink persists documents for one folder of an export run. It implements
// the export stage's Sink interface. Persist is idempotent: the same record
// overwrites its previous file.
type DirSink struct {
	root      string
	folder    string
	writeMeta bool
}

// NewDirSink returns a sink rooted at root writing under the folder name.
// When writeMeta is set, each record also gets a YAML metadata sidecar
// under root/.metadata/.
func NewDirSink(root, folder string, writeMeta bool) *DirSink {
	return &DirSink{root: root, folder: folder, writeMeta: writeMeta}
}

// Persist writes the document to its bucketed path. The document write must
// succeed for Persist to return nil; a sidecar failure only warns, since the
// document itself is already durable.
func (s *DirSink) Persist(meta types.RecordMeta, doc *types.RenderedDocument) error {
	dir := filepath.Join(s.root, s.folder, bucket(meta))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory %s: %w", dir, err)
	}

	name := SafeName(meta.Filename, meta.ID)
	path := filepath.Join(dir, name+".md")
	if err := writeAtomic(path, []byte(doc.Markdown())); err != nil {
		return fmt.Errorf("writing document %s: %w", path, err)
	}

	if s.writeMeta {
		if err := s.writeSidecar(meta, path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: metadata sidecar for %s: %v\n", meta.ID, err)
		}
	}
	return nil
}

// DocumentPath returns where Persist stores the record's document.
func (s *DirSink) DocumentPath(meta types.RecordMeta) string {
	return filepath.Join(s.root, s.folder, bucket(meta), SafeName(meta.Filename, meta.ID)+".md")
}

// sidecar is the YAML metadata record written next to the export tree.
type sidecar struct {
	types.RecordMeta `yaml:",inline"`

	// Folder is the remote folder the record was exported from.
	Folder string `yaml:"folder"`

	// Path is the exported document location relative to the root.
	Path string `yaml:"path"`
}

func (s *DirSink) writeSidecar(meta types.RecordMeta, docPath string) error {
	dir := filepath.Join(s.root, metadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}
	rel, err := filepath.Rel(s.root, docPath)
	if err != nil {
		rel = docPath
	}
	data, err := yaml.Marshal(sidecar{RecordMeta: meta, Folder: s.folder, Path: rel})
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, meta.ID+".yaml"), data, 0o644)
}

// bucket returns the year/month subpath for the record's start time, or
// unknown/unknown when the record has no timestamp.
func bucket(meta types.RecordMeta) string {
	if meta.StartTime == 0 {
		return filepath.Join(unknownLabel, unknownLabel)
	}
	started := meta.Started()
	return filepath.Join(fmt.Sprintf("%04d", started.Year()), fmt.Sprintf("%02d", int(started.Month())))
}

// SafeName filters a record filename down to characters safe for every
// filesystem the export tree might sync to. An empty result falls back to
// the record id.
func SafeName(filename, fallback string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		return fallback
	}
	return name
}

// writeAtomic writes data to path via a temp file in the same directory and
// a rename.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
