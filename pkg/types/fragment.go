// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Fragment kind discriminators as served by the upstream API. The vocabulary
// is small but not closed: records occasionally carry kinds outside this set,
// which the normalizer handles with a generic best-effort rule.
const (
	KindTranscript   = "transaction"
	KindOutline      = "outline"
	KindAutoSummary  = "auto_sum_note"
	KindMultiSummary = "sum_multi_note"
	KindUserNote     = "consumer_note"
)

// ContentFragment is one unit of upstream content for a record. Fragments are
// built fresh per retrieval call and are immutable afterwards.
type ContentFragment struct {
	// Kind is the upstream data_type driving which extraction rule applies.
	Kind string `json:"kind" yaml:"kind"`

	// SectionLabel is the upstream data_tab_name, a human label for the
	// rendered section. Often empty; kinds supply their own defaults.
	SectionLabel string `json:"section_label,omitempty" yaml:"section_label,omitempty"`

	// TitleHint is the upstream data_title, used only when SectionLabel
	// is empty.
	TitleHint string `json:"title_hint,omitempty" yaml:"title_hint,omitempty"`

	// Payload is the decoded content value. Its shape depends on Kind and
	// on the upstream version: a string, a []any, or a map[string]any.
	Payload any `json:"payload" yaml:"payload"`
}
