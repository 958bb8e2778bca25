// Package sabnzbd adapts a SABnzbd instance to the download.Client
// contract via its API-key-authenticated JSON HTTP interface.
package sabnzbd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/reelforge/reelforge/pkg/download"
)

// Client talks to one SABnzbd instance's `/sabnzbd/api` endpoint.
type Client struct {
	http   *http.Client
	scheme string
	host   string
	apiKey string
}

var _ download.Client = (*Client)(nil)

// New builds a Client for a SABnzbd host.
func New(httpClient *http.Client, scheme, host, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, scheme: scheme, host: host, apiKey: apiKey}
}

type addURLResponse struct {
	Status bool     `json:"status"`
	NzoIDs []string `json:"nzo_ids"`
	Error  string   `json:"error"`
}

// Add submits an NZB by URL. SABnzbd's addurl mode is itself idempotent on
// a duplicate URL already queued or in history (it returns the existing
// nzo_id rather than erroring), so the adapter simply forwards whatever
// nzo_id comes back.
func (c *Client) Add(ctx context.Context, req download.AddRequest) (download.AddResult, error) {
	if req.Protocol != download.ProtocolUsenet {
		return download.AddResult{}, fmt.Errorf("sabnzbd: unsupported protocol %q", req.Protocol)
	}

	q := url.Values{}
	q.Set("mode", "addurl")
	q.Set("name", req.URL)
	q.Set("output", "json")
	if req.Category != "" {
		q.Set("cat", req.Category)
	}

	var resp addURLResponse
	if err := c.get(ctx, q, &resp); err != nil {
		return download.AddResult{}, fmt.Errorf("sabnzbd add: %w", err)
	}
	if !resp.Status || len(resp.NzoIDs) == 0 {
		message := resp.Error
		if message == "" {
			message = "sabnzbd did not return an nzo id"
		}
		return download.AddResult{}, errors.New(message)
	}

	return download.AddResult{OK: true, ClientID: resp.NzoIDs[0], Message: "added"}, nil
}

type queueResponse struct {
	Queue struct {
		Slots []slot `json:"slots"`
	} `json:"queue"`
}

type slot struct {
	NzoID      string `json:"nzo_id"`
	Filename   string `json:"filename"`
	Cat        string `json:"cat"`
	Percentage string `json:"percentage"`
	MB         string `json:"mb"`
	Status     string `json:"status"`
}

func (s slot) toJob() download.Job {
	progress, _ := strconv.ParseFloat(s.Percentage, 64)
	sizeMB, _ := strconv.ParseFloat(s.MB, 64)
	return download.Job{
		ClientID:  s.NzoID,
		Name:      s.Filename,
		Category:  s.Cat,
		Progress:  progress,
		SizeBytes: int64(sizeMB * 1024 * 1024),
		Done:      s.Status == "Completed",
	}
}

// List returns the current queue, optionally filtered to one category.
func (c *Client) List(ctx context.Context, category string) ([]download.Job, error) {
	q := url.Values{}
	q.Set("mode", "queue")
	q.Set("output", "json")

	var resp queueResponse
	if err := c.get(ctx, q, &resp); err != nil {
		return nil, fmt.Errorf("sabnzbd list: %w", err)
	}

	jobs := make([]download.Job, 0, len(resp.Queue.Slots))
	for _, s := range resp.Queue.Slots {
		if category != "" && s.Cat != category {
			continue
		}
		jobs = append(jobs, s.toJob())
	}
	return jobs, nil
}

// Remove deletes a queued NZB, optionally deleting its files. History
// entries are not touched.
func (c *Client) Remove(ctx context.Context, clientID string, deleteFiles bool) error {
	q := url.Values{}
	q.Set("mode", "queue")
	q.Set("name", "delete")
	q.Set("value", clientID)
	q.Set("output", "json")
	if deleteFiles {
		q.Set("del_files", "1")
	}

	var resp struct {
		Status bool `json:"status"`
	}
	if err := c.get(ctx, q, &resp); err != nil {
		return fmt.Errorf("sabnzbd remove: %w", err)
	}
	if !resp.Status {
		return fmt.Errorf("sabnzbd: remove of %q failed", clientID)
	}
	return nil
}

func (c *Client) get(ctx context.Context, query url.Values, out any) error {
	query.Set("apikey", c.apiKey)

	endpoint := url.URL{Scheme: c.scheme, Host: c.host, Path: "/sabnzbd/api", RawQuery: query.Encode()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
