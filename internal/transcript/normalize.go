// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcript merges a record's content fragments into one ordered
// Markdown document. Upstream fragment shapes drift between service versions,
// so every extraction rule is lenient: a fragment that does not match its
// kind's expected structure contributes nothing instead of failing the record.
package transcript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/plaud-export/pkg/types"
)

// kindPriority fixes the section order of the rendered document: raw dialogue
// first, then derived summaries and annotations. Unrecognized kinds share the
// lowest priority; ties keep arrival order.
var kindPriority = map[string]int{
	types.KindTranscript:   1,
	types.KindOutline:      2,
	types.KindAutoSummary:  3,
	types.KindMultiSummary: 4,
	types.KindUserNote:     5,
}

const unknownPriority = 99

// summaryFields is the extraction priority for summary-kind mappings.
// Upstream has renamed this field across versions; all spellings coexist.
var summaryFields = []string{"ai_content", "content", "text", "summary"}

// UnavailableNotice is the literal placeholder body used when a record has
// no decodable content at all.
const UnavailableNotice = "*Transcription unavailable.*"

// Normalize merges fragments into a rendered document titled fallbackTitle.
// It returns (nil, false) when the fragments yielded no usable section.
//
// An empty fragment slice is a distinct case: it renders a minimal
// placeholder from the record metadata and still reports ok=true, so callers
// can tell "confirmed empty record" apart from "nothing extractable".
func Normalize(fragments []types.ContentFragment, fallbackTitle string, meta *types.RecordMeta) (*types.RenderedDocument, bool) {
	if len(fragments) == 0 {
		return Placeholder(fallbackTitle, meta), true
	}

	sorted := make([]types.ContentFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priority(sorted[i].Kind) < priority(sorted[j].Kind)
	})

	var sections []string
	for _, f := range sorted {
		sections = append(sections, extract(f)...)
	}
	if len(sections) == 0 {
		return nil, false
	}
	return &types.RenderedDocument{Title: fallbackTitle, Sections: sections}, true
}

func priority(kind string) int {
	if p, ok := kindPriority[kind]; ok {
		return p
	}
	return unknownPriority
}

// extract applies the kind-specific rule and returns zero or more rendered
// sections. Mismatched shapes within a recognized kind fall through to the
// generic rule rather than being dropped outright.
func extract(f types.ContentFragment) []string {
	switch f.Kind {
	case types.KindTranscript:
		if items, ok := f.Payload.([]any); ok {
			return turnSections(items)
		}
	case types.KindOutline:
		if items, ok := f.Payload.([]any); ok {
			return outlineSection(items)
		}
	case types.KindAutoSummary:
		return summarySection(f.Payload, heading(f.SectionLabel, "", "Summary"))
	case types.KindMultiSummary:
		return multiSummarySection(f.Payload, heading(f.SectionLabel, f.TitleHint, "Summary"))
	case types.KindUserNote:
		if s, ok := f.Payload.(string); ok && strings.TrimSpace(s) != "" {
			return []string{"## Notes\n\n" + Repair(s)}
		}
	}
	return genericSection(f.Payload)
}

// turnSections renders each turn's content as its own headingless section;
// the dialogue is the primary narrative and needs no label.
func turnSections(items []any) []string {
	var sections []string
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := m["content"].(string); ok {
			sections = append(sections, s)
		}
	}
	return sections
}

// outlineSection collects topic fields into one bulleted list. No topics,
// no section.
func outlineSection(items []any) []string {
	var bullets []string
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if topic, ok := m["topic"].(string); ok {
			bullets = append(bullets, "- "+topic)
		}
	}
	if len(bullets) == 0 {
		return nil
	}
	return []string{"## Outline\n\n" + strings.Join(bullets, "\n")}
}

// summarySection extracts text from a mapping (first present summary field
// wins) or a bare string, rendered under the resolved heading. Blank text
// skips the fragment.
func summarySection(payload any, head string) []string {
	var text string
	switch v := payload.(type) {
	case map[string]any:
		text = firstField(v, summaryFields)
	case string:
		text = v
	default:
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []string{fmt.Sprintf("## %s\n\n%s", head, text)}
}

// multiSummarySection handles the list-of-summaries variant: mappings get the
// same field-priority extraction, bare strings pass through, and all
// non-empty parts join under one heading.
func multiSummarySection(payload any, head string) []string {
	items, ok := payload.([]any)
	if !ok {
		return summarySection(payload, head)
	}
	var parts []string
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			if t := firstField(v, summaryFields); t != "" {
				parts = append(parts, t)
			}
		case string:
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("## %s\n\n%s", head, strings.Join(parts, "\n\n"))}
}

// genericSection is the best-effort rule for unrecognized kinds and
// unmatched shapes: a non-blank string renders verbatim with no heading;
// containers get one pass through the legacy content search.
func genericSection(payload any) []string {
	if s, ok := payload.(string); ok {
		if strings.TrimSpace(s) != "" {
			return []string{s}
		}
		return nil
	}
	if s, ok := findContent(payload, 0); ok && strings.TrimSpace(s) != "" {
		return []string{s}
	}
	return nil
}

func firstField(m map[string]any, fields []string) string {
	for _, f := range fields {
		if s, ok := m[f].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func heading(label, hint, fallback string) string {
	if label != "" {
		return label
	}
	if hint != "" {
		return hint
	}
	return fallback
}

// Placeholder renders the minimal document for a record with no decodable
// content: whatever metadata is known, then the unavailability notice.
func Placeholder(title string, meta *types.RecordMeta) *types.RenderedDocument {
	var lines []string
	if meta != nil {
		name := meta.Filename
		if name == "" {
			name = meta.ID
		}
		if name != "" {
			lines = append(lines, "**File:** "+name)
		}
		if meta.Duration > 0 {
			lines = append(lines, "**Duration:** "+FormatDuration(meta.Duration))
		}
		if meta.StartTime > 0 {
			lines = append(lines, "**Date:** "+meta.Started().Format("2006-01-02 15:04:05"))
		}
	}

	sections := make([]string, 0, 2)
	if len(lines) > 0 {
		sections = append(sections, strings.Join(lines, "\n"))
	}
	sections = append(sections, UnavailableNotice)
	return &types.RenderedDocument{Title: title, Sections: sections}
}

// FormatDuration renders a millisecond duration as m:ss (65000 -> "1:05").
func FormatDuration(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
