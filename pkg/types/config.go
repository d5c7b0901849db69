// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model and configuration structs
// used across the export pipeline stages.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	// The upstream service rejects obviously non-browser agents.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// APIConfig holds connection settings for the Plaud web API.
type APIConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API origin (default "https://api.plaud.ai").
	// Overridable so tests can point the client at a local server.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Token is the bearer token used for the authorization header.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// ExportDir is the base directory of the export tree. Each folder gets
	// a subdirectory, bucketed by record year and month.
	ExportDir string `json:"export_dir" yaml:"export_dir"`

	// RecordDelay is the pause between consecutive records. The upstream
	// service is rate-sensitive; its usage policy requires pacing.
	RecordDelay time.Duration `json:"record_delay" yaml:"record_delay"`

	// ArchiveAfterExport moves each remote record to the trash once its
	// document is durably written. Never applied before a confirmed write.
	ArchiveAfterExport bool `json:"archive_after_export" yaml:"archive_after_export"`

	// WriteMetadata controls the per-record YAML sidecar under .metadata/.
	WriteMetadata bool `json:"write_metadata" yaml:"write_metadata"`

	// LedgerPath is the SQLite run-ledger location. Empty means
	// <export_dir>/.index/export.db.
	LedgerPath string `json:"ledger_path,omitempty" yaml:"ledger_path,omitempty"`
}
