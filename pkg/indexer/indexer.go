// Package indexer defines the capability contract an external release
// source (Torznab/Newznab-speaking indexer, or an indexer manager such as
// Prowlarr fronting several of them) must satisfy to be searched by
// AutoSearch and polled by RSSGrabber.
package indexer

import (
	"context"
	"time"

	"github.com/reelforge/reelforge/pkg/selector"
)

// MediaType narrows a search to the indexer's movie or TV categories.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaSeries MediaType = "series"
)

// TestResult reports the outcome of a connectivity check against one
// indexer, surfaced by the `/automation/indexers/{id}/test` endpoint.
type TestResult struct {
	OK      bool
	Version string
	Message string
}

// Client is the capability an indexer (or an indexer manager) exposes.
// Search and RSS failures are reported through the returned error but
// never panic the caller; call sites that fan out across many indexers in
// parallel treat a failing indexer as contributing zero releases rather
// than aborting the whole batch.
type Client interface {
	// Search queries one configured indexer for a media type and free-text
	// query, returning candidate releases ready for selector.Rank.
	Search(ctx context.Context, indexerID int64, mediaType MediaType, query string) ([]selector.Candidate, error)

	// FetchRSS pulls the indexer's RSS/newznab feed, returning every release
	// currently advertised (RSSGrabber dedupes against its own cache by GUID).
	FetchRSS(ctx context.Context, indexerID int64) ([]RSSItem, error)

	// Test verifies connectivity and credentials for one configured
	// indexer without performing a real search.
	Test(ctx context.Context, indexerID int64) (TestResult, error)
}

// RSSItem is a raw feed entry enriched with the moment it was observed,
// used by RSSGrabber to populate its dedup cache before running selection.
type RSSItem struct {
	Candidate selector.Candidate
	GUID      string
	Published time.Time
}
