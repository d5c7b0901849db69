// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Folder is one remote folder (an upstream "filetag").
type Folder struct {
	// ID is the upstream tag identifier.
	ID string `json:"id" yaml:"id"`

	// Name is the folder display name, also used as the local directory name.
	Name string `json:"name" yaml:"name"`
}

// RecordMeta describes one remote record as returned by the listing endpoint.
type RecordMeta struct {
	// ID is the upstream record identifier.
	ID string `json:"id" yaml:"id"`

	// Filename is the record's display name, used for the document title
	// and the exported file name.
	Filename string `json:"filename" yaml:"filename"`

	// Duration is the recording length in milliseconds. Zero when unknown.
	Duration int64 `json:"duration,omitempty" yaml:"duration,omitempty"`

	// StartTime is the recording start in milliseconds since the epoch.
	// Zero when unknown.
	StartTime int64 `json:"start_time,omitempty" yaml:"start_time,omitempty"`
}

// Started returns the record start time, or the zero time when unknown.
func (m RecordMeta) Started() time.Time {
	if m.StartTime == 0 {
		return time.Time{}
	}
	return time.UnixMilli(m.StartTime)
}

// RecordOutcome is the result of processing one record during an export run.
// Invariant: Archived is true only if Persisted is true.
type RecordOutcome struct {
	RecordID  string `json:"record_id" yaml:"record_id"`
	Persisted bool   `json:"persisted" yaml:"persisted"`
	Archived  bool   `json:"archived" yaml:"archived"`

	// Err is the failure reason, empty on full success. A persisted record
	// whose archive call failed keeps Persisted=true with Err set.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunSummary aggregates the outcomes of one export run.
type RunSummary struct {
	// Attempted counts records the run processed.
	Attempted int `json:"attempted" yaml:"attempted"`

	// Persisted counts records whose document was durably written.
	Persisted int `json:"persisted" yaml:"persisted"`

	// Archived counts records marked archived remotely. Never exceeds Persisted.
	Archived int `json:"archived" yaml:"archived"`

	// Failed counts records that produced no stored document.
	Failed int `json:"failed" yaml:"failed"`

	// Outcomes holds one entry per attempted record, in input order.
	Outcomes []RecordOutcome `json:"outcomes" yaml:"outcomes"`
}

// HasFailures reports whether any record failed.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}
