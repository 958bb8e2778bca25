// Package prowlarr adapts a Prowlarr instance to the indexer.Client
// contract, issuing plain HTTP requests against Prowlarr's REST API rather
// than generating a client from its OpenAPI schema — the schema isn't
// vendored into this module, and Prowlarr's indexer/search/history surface
// is small enough to hand-write directly against net/http.
package prowlarr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/reelforge/reelforge/pkg/indexer"
	"github.com/reelforge/reelforge/pkg/selector"
)

// Config holds per-instance connection settings. One Config maps to one
// store.IndexerConfig row; Prowlarr itself multiplexes many trackers
// behind a single instance, addressed here by their Prowlarr indexer id.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client talks to a single Prowlarr instance.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ indexer.Client = (*Client)(nil)

// New constructs a Client from cfg. The default HTTP timeout is
// conservative enough to let a slow indexer respond.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("prowlarr: base url is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("prowlarr: api key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}, nil
}

// indexerResource is the subset of Prowlarr's IndexerResource this adapter
// cares about.
type indexerResource struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Enable   bool   `json:"enable"`
	Protocol string `json:"protocol"`
}

// releaseResource is the subset of Prowlarr's ReleaseResource used to build
// a selector.Candidate. Title, guid, and seeders are genuinely nullable on
// the wire — usenet results carry no seeders, and some trackers omit the
// guid — so they're modeled as nullable rather than silently zero-valued.
type releaseResource struct {
	Title       nullable.Nullable[string] `json:"title"`
	DownloadURL string                    `json:"downloadUrl"`
	GUID        nullable.Nullable[string] `json:"guid"`
	Size        int64                     `json:"size"`
	Seeders     nullable.Nullable[int]    `json:"seeders"`
	IndexerID   int32                     `json:"indexerId"`
	Indexer     string                    `json:"indexer"`
	Protocol    string                    `json:"protocol"`
	PublishDate time.Time                 `json:"publishDate"`
	Categories  []int32                   `json:"categories"`
}

// usable reports whether the release carries enough identity to ever be
// grabbed: a present title and a download URL.
func (r releaseResource) usable() bool {
	title, err := r.Title.Get()
	return err == nil && title != "" && r.DownloadURL != ""
}

func (r releaseResource) toCandidate() selector.Candidate {
	title, _ := r.Title.Get()
	seeders, _ := r.Seeders.Get()
	return selector.Candidate{
		Title:       title,
		DownloadURL: r.DownloadURL,
		Size:        r.Size,
		Seeders:     seeders,
		Indexer:     r.Indexer,
		Protocol:    strings.ToLower(r.Protocol),
	}
}

var movieCategories = []int32{2000}
var seriesCategories = []int32{5000}

func categoriesFor(mediaType indexer.MediaType) []int32 {
	if mediaType == indexer.MediaSeries {
		return seriesCategories
	}
	return movieCategories
}

// Search queries Prowlarr's aggregate search endpoint, scoped to one
// configured indexer id and a media type's top-level category.
func (c *Client) Search(ctx context.Context, indexerID int64, mediaType indexer.MediaType, query string) ([]selector.Candidate, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("indexerIds", fmt.Sprintf("%d", indexerID))
	for _, cat := range categoriesFor(mediaType) {
		q.Add("categories", fmt.Sprintf("%d", cat))
	}
	q.Set("limit", "100")

	var releases []releaseResource
	if err := c.get(ctx, "/api/v1/search", q, &releases); err != nil {
		return nil, fmt.Errorf("prowlarr search: %w", err)
	}

	candidates := make([]selector.Candidate, 0, len(releases))
	for _, r := range releases {
		if !r.usable() {
			continue
		}
		candidates = append(candidates, r.toCandidate())
	}
	return candidates, nil
}

// FetchRSS pulls the indexer's RSS feed via Prowlarr's search endpoint in
// RSS mode (no query, with type=search), which is how Prowlarr itself
// exposes a feed pull through the same search surface used for queries.
func (c *Client) FetchRSS(ctx context.Context, indexerID int64) ([]indexer.RSSItem, error) {
	q := url.Values{}
	q.Set("indexerIds", fmt.Sprintf("%d", indexerID))
	q.Set("type", "search")
	q.Set("limit", "100")

	var releases []releaseResource
	if err := c.get(ctx, "/api/v1/search", q, &releases); err != nil {
		return nil, fmt.Errorf("prowlarr rss: %w", err)
	}

	items := make([]indexer.RSSItem, 0, len(releases))
	for _, r := range releases {
		if !r.usable() {
			continue
		}
		guid, err := r.GUID.Get()
		if err != nil || guid == "" {
			guid = r.DownloadURL
		}
		items = append(items, indexer.RSSItem{
			Candidate: r.toCandidate(),
			GUID:      guid,
			Published: r.PublishDate,
		})
	}
	return items, nil
}

// Test verifies the configured indexer id exists and is enabled.
func (c *Client) Test(ctx context.Context, indexerID int64) (indexer.TestResult, error) {
	var indexers []indexerResource
	if err := c.get(ctx, "/api/v1/indexer", nil, &indexers); err != nil {
		return indexer.TestResult{}, fmt.Errorf("prowlarr test: %w", err)
	}

	for _, i := range indexers {
		if int64(i.ID) != indexerID {
			continue
		}
		if !i.Enable {
			return indexer.TestResult{OK: false, Message: fmt.Sprintf("indexer %q is disabled in prowlarr", i.Name)}, nil
		}
		return indexer.TestResult{OK: true, Message: fmt.Sprintf("indexer %q reachable", i.Name)}, nil
	}

	return indexer.TestResult{OK: false, Message: fmt.Sprintf("indexer id %d not found in prowlarr", indexerID)}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
