// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export drives the per-record export workflow: fetch fragments,
// normalize, persist, then optionally archive the remote record. Archival is
// strictly ordered after a confirmed persist; a remote record is never marked
// archived while its local copy is missing.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/plaud-export/internal/transcript"
	"github.com/pdiddy/plaud-export/pkg/types"
)

// Retriever fetches a record's content fragments. Implementations are
// best-effort and never fail: any transport or parsing error yields an
// empty slice instead, so a single unreachable content link cannot abort
// the record.
type Retriever interface {
	FetchFragments(ctx context.Context, recordID string) []types.ContentFragment
}

// sourceTitler is an optional Retriever upgrade: an alternate lookup for a
// record's title, consulted only when the record yielded zero fragments.
type sourceTitler interface {
	SourceTitle(ctx context.Context, recordID string) (string, bool)
}

// Sink durably stores one rendered document per record. Persist is
// idempotent: re-persisting the same record overwrites.
type Sink interface {
	Persist(meta types.RecordMeta, doc *types.RenderedDocument) error
}

// Archiver marks a remote record archived. One-way; there is no undo.
type Archiver interface {
	Archive(ctx context.Context, recordID string) error
}

// Coordinator runs the export workflow over a set of records, strictly
// sequentially and in input order. No call is retried; each failure is
// recorded once and the run advances.
type Coordinator struct {
	Retriever Retriever
	Sink      Sink
	Archiver  Archiver

	// Delay is the pause between consecutive records (rate pacing).
	Delay time.Duration

	// ArchiveAfterPersist enables the archive step. Even when set, a
	// record is archived only after its persist succeeded.
	ArchiveAfterPersist bool

	// Out receives per-record progress lines. Nil discards them.
	Out io.Writer
}

// Run processes records in order and returns a summary covering every
// processed record exactly once. Cancellation is honored between records,
// never mid-record, so the persist-then-archive sequence for a record either
// runs to completion or does not start; a cancelled run returns the partial
// summary together with ctx.Err().
func (c *Coordinator) Run(ctx context.Context, records []types.RecordMeta) (types.RunSummary, error) {
	w := c.Out
	if w == nil {
		w = io.Discard
	}

	var summary types.RunSummary
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if i > 0 && c.Delay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(c.Delay):
			}
		}

		outcome := c.processRecord(ctx, rec, w)
		summary.Attempted++
		if outcome.Persisted {
			summary.Persisted++
		} else {
			summary.Failed++
		}
		if outcome.Archived {
			summary.Archived++
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	fmt.Fprintf(w, "\nRun summary: %d persisted, %d archived, %d failed (total: %d)\n",
		summary.Persisted, summary.Archived, summary.Failed, summary.Attempted)
	return summary, nil
}

// processRecord runs fetch -> normalize -> persist -> archive for one record.
func (c *Coordinator) processRecord(ctx context.Context, rec types.RecordMeta, w io.Writer) types.RecordOutcome {
	outcome := types.RecordOutcome{RecordID: rec.ID}

	fragments := c.Retriever.FetchFragments(ctx, rec.ID)

	title := rec.Filename
	if title == "" {
		title = rec.ID
	}
	if len(fragments) == 0 {
		// Alternate source lookup for a better placeholder title.
		if st, ok := c.Retriever.(sourceTitler); ok {
			if t, found := st.SourceTitle(ctx, rec.ID); found {
				title = t
			}
		}
	}

	doc, ok := transcript.Normalize(fragments, title, &rec)
	if !ok {
		outcome.Err = "no content"
		fmt.Fprintf(w, "failed:   %s (no content)\n", rec.ID)
		return outcome
	}

	if err := c.Sink.Persist(rec, doc); err != nil {
		outcome.Err = err.Error()
		fmt.Fprintf(w, "failed:   %s (%v)\n", rec.ID, err)
		return outcome
	}
	outcome.Persisted = true

	if !c.ArchiveAfterPersist {
		fmt.Fprintf(w, "exported: %s\n", rec.ID)
		return outcome
	}

	if err := c.Archiver.Archive(ctx, rec.ID); err != nil {
		// The local copy is already stored; the record stays persisted.
		outcome.Err = err.Error()
		fmt.Fprintf(w, "exported: %s (archive failed: %v)\n", rec.ID, err)
		return outcome
	}
	outcome.Archived = true
	fmt.Fprintf(w, "exported: %s (archived)\n", rec.ID)
	return outcome
}
