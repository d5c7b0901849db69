// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plaud

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/plaud-export/pkg/types"
)

// contentEntry is one item of the detail endpoint's content_list: a typed
// pointer to a payload stored behind a presigned link.
type contentEntry struct {
	DataType    string `json:"data_type"`
	DataTabName string `json:"data_tab_name"`
	DataTitle   string `json:"data_title"`
	DataLink    string `json:"data_link"`
}

// FetchFragments retrieves a record's content fragments. Best-effort by
// contract: any transport, decompression, or parsing failure skips the
// affected entry or yields an empty slice. It never returns an error, so a
// single dead content link cannot abort the record.
func (c *Client) FetchFragments(ctx context.Context, recordID string) []types.ContentFragment {
	var payload struct {
		envelope
		Data struct {
			ContentList []contentEntry `json:"content_list"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/file/detail/"+recordID, nil, &payload); err != nil {
		return nil
	}
	if payload.Status != 0 {
		return nil
	}

	var fragments []types.ContentFragment
	for _, entry := range payload.Data.ContentList {
		if entry.DataLink == "" {
			continue
		}
		value, err := c.fetchPayload(ctx, entry.DataLink)
		if err != nil || value == nil {
			continue
		}
		fragments = append(fragments, types.ContentFragment{
			Kind:         entry.DataType,
			SectionLabel: entry.DataTabName,
			TitleHint:    entry.DataTitle,
			Payload:      value,
		})
	}
	return fragments
}

// fetchPayload downloads one content link and decodes it: gunzip when the
// link says so, then JSON, then plain text as a last resort. The links are
// presigned storage URLs and need no session headers.
func (c *Client) fetchPayload(ctx context.Context, link string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("creating content request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content returned HTTP %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if strings.HasSuffix(link, ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip payload: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading content payload: %w", err)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err == nil {
		return value, nil
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, nil
	}
	return string(raw), nil
}
