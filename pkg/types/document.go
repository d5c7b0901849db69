// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// RenderedDocument is one record's content normalized into an ordered
// Markdown document. A returned document always has at least one section;
// "nothing usable" is represented by not returning a document at all.
type RenderedDocument struct {
	// Title is the document title, rendered as the top-level heading.
	Title string `json:"title" yaml:"title"`

	// Sections are the rendered body parts in their final order. Each
	// section already carries its own heading markup where one applies.
	Sections []string `json:"sections" yaml:"sections"`
}

// Markdown renders the document as a single Markdown string: the title
// heading followed by the sections, blank-line separated.
func (d *RenderedDocument) Markdown() string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(d.Title)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(d.Sections, "\n\n"))
	return b.String()
}
