// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tag stamps exported Markdown files with their root folder name as
// the first tag, so the notes stay filterable by origin after syncing into a
// vault.
package tag

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// tagLine matches the vault convention "tag #a #b" line anywhere in a file.
var tagLine = regexp.MustCompile(`(?m)^tag[ \t]+(.+)$`)

// hashTag matches one "#word" token inside a tag line.
var hashTag = regexp.MustCompile(`#\S+`)

// EnsureFirstTag returns content with "#rootTag" as the first tag on the
// file's tag line. Missing line: a new leading tag line is inserted.
// Present elsewhere in the line: it is moved to the front. Already first
// (case-insensitively): content is returned unchanged.
func EnsureFirstTag(content, rootTag string) string {
	want := "#" + rootTag

	loc := tagLine.FindStringSubmatchIndex(content)
	if loc == nil {
		return "tag " + want + "\n\n" + content
	}

	existing := strings.TrimSpace(content[loc[2]:loc[3]])
	tags := hashTag.FindAllString(existing, -1)

	var newLine string
	switch {
	case len(tags) == 0:
		newLine = "tag " + want
	case strings.EqualFold(tags[0], want):
		return content
	default:
		rest := make([]string, 0, len(tags))
		for _, t := range tags {
			if !strings.EqualFold(t, want) {
				rest = append(rest, t)
			}
		}
		newLine = strings.TrimRight("tag "+want+" "+strings.Join(rest, " "), " ")
	}
	return content[:loc[0]] + newLine + content[loc[1]:]
}

// Summary reports an Apply pass.
type Summary struct {
	Updated int
	Failed  int
}

// Apply walks every .md file under root and makes the file's top-level
// folder its first tag, printing updated paths to w. Files directly under
// root (no folder) are skipped.
func Apply(root string, w io.Writer) (Summary, error) {
	var summary Summary
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		folder := rootFolder(rel)
		if folder == "" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", rel, err)
			summary.Failed++
			return nil
		}
		updated := EnsureFirstTag(string(data), folder)
		if updated == string(data) {
			return nil
		}
		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", rel, err)
			summary.Failed++
			return nil
		}
		fmt.Fprintf(w, "updated: %s\n", rel)
		summary.Updated++
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("walking %s: %w", root, err)
	}
	return summary, nil
}

// rootFolder returns the first path element of rel, or "" when the file
// sits directly under the root.
func rootFolder(rel string) string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
