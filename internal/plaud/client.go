// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plaud is the client for the Plaud web API: folder and record
// listing, content fragment retrieval, and the trash (archive) call.
package plaud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pdiddy/plaud-export/pkg/types"
)

// DefaultBaseURL is the production API origin.
const DefaultBaseURL = "https://api.plaud.ai"

// Client talks to the Plaud web API using an established bearer session.
type Client struct {
	http      *http.Client
	baseURL   string
	token     string
	userAgent string
}

// NewClient builds a client from the API config. A nil httpClient falls back
// to a default client with the configured timeout.
func NewClient(cfg types.APIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		http:      httpClient,
		baseURL:   base,
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
	}
}

// newRequest builds an API request carrying the web-session headers the
// service expects from a browser client.
func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("App-Platform", "web")
	req.Header.Set("App-Language", "en")
	req.Header.Set("Authorization", "bearer "+c.token)
	return req, nil
}

// envelope is the common API response wrapper. A zero status means success.
type envelope struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

// getJSON performs a GET and decodes the body into out, enforcing the
// envelope status.
func (c *Client) getJSON(ctx context.Context, path string, headers map[string]string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned HTTP %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing API response: %w", err)
	}
	return nil
}

// ListFolders returns the remote folders (upstream "filetags").
func (c *Client) ListFolders(ctx context.Context) ([]types.Folder, error) {
	var payload struct {
		envelope
		Tags []struct {
			ID   any    `json:"id"`
			Name string `json:"name"`
		} `json:"data_filetag_list"`
	}
	if err := c.getJSON(ctx, "/filetag/", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Status != 0 {
		return nil, fmt.Errorf("API error: %s", orUnknown(payload.Msg))
	}

	var folders []types.Folder
	for _, t := range payload.Tags {
		id := stringID(t.ID)
		if t.Name == "" || id == "" {
			continue
		}
		folders = append(folders, types.Folder{ID: id, Name: t.Name})
	}
	return folders, nil
}

// ListRecords returns the records tagged with the folder, newest first, as
// served by the listing endpoint.
func (c *Client) ListRecords(ctx context.Context, folder types.Folder) ([]types.RecordMeta, error) {
	q := url.Values{}
	q.Set("skip", "0")
	q.Set("limit", "99999")
	q.Set("is_trash", "0")
	q.Set("sort_by", "start_time")
	q.Set("is_desc", "true")
	q.Set("tagId", folder.ID)
	q.Set("categoryId", folder.Name)

	var payload struct {
		envelope
		Files []struct {
			ID        string   `json:"id"`
			Filename  string   `json:"filename"`
			Duration  int64    `json:"duration"`
			StartTime int64    `json:"start_time"`
			TagIDs    []string `json:"filetag_id_list"`
		} `json:"data_file_list"`
	}
	if err := c.getJSON(ctx, "/file/simple/web?"+q.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	if payload.Status != 0 {
		return nil, fmt.Errorf("API error: %s", orUnknown(payload.Msg))
	}

	var records []types.RecordMeta
	for _, f := range payload.Files {
		// The listing ignores tagId for some accounts; filter locally.
		if !contains(f.TagIDs, folder.ID) {
			continue
		}
		name := f.Filename
		if name == "" {
			name = f.ID
		}
		records = append(records, types.RecordMeta{
			ID:        f.ID,
			Filename:  name,
			Duration:  f.Duration,
			StartTime: f.StartTime,
		})
	}
	return records, nil
}

// SourceTitle queries the alternate source endpoint for a record's group
// title. Used to label placeholder documents when a record has no fragments.
func (c *Client) SourceTitle(ctx context.Context, recordID string) (string, bool) {
	var payload struct {
		envelope
		Data struct {
			Title string `json:"source_group_title"`
		} `json:"data"`
	}
	err := c.getJSON(ctx, "/ai/query_source", map[string]string{"file-id": recordID}, &payload)
	if err != nil || payload.Status != 0 || payload.Data.Title == "" {
		return "", false
	}
	return payload.Data.Title, true
}

// Archive moves a record to the remote trash. One-way in this system.
func (c *Client) Archive(ctx context.Context, recordID string) error {
	body, err := json.Marshal([]string{recordID})
	if err != nil {
		return fmt.Errorf("encoding trash request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/file/trash/", body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("trash request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trash returned HTTP %d", resp.StatusCode)
	}
	var payload envelope
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("parsing trash response: %w", err)
	}
	if payload.Status != 0 {
		return fmt.Errorf("trash error: %s", orUnknown(payload.Msg))
	}
	return nil
}

func orUnknown(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// stringID tolerates upstream ids arriving as strings or numbers.
func stringID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	}
	return ""
}
