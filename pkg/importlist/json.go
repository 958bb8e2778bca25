package importlist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/reelforge/reelforge/pkg/httpclient"
	"github.com/reelforge/reelforge/pkg/store"
)

// JSONListSource fetches a JSON list endpoint shaped like TMDB's "list"
// response or Trakt's list-items response — both return a "results"-ish
// array of objects carrying either a numeric TMDB id or an IMDb id plus a
// media-type discriminator. Like pkg/metadata/tmdb, this is a hand-written
// net/http client rather than a generated one.
type JSONListSource struct {
	http httpclient.HTTPClient
}

// NewJSONListSource builds a JSONListSource. client defaults to an
// httpclient.RateLimitedClient so repeated list refreshes back off on 429s
// the same way the metadata and indexer adapters do.
func NewJSONListSource(client httpclient.HTTPClient) *JSONListSource {
	if client == nil {
		client = httpclient.New()
	}
	return &JSONListSource{http: client}
}

// listItem covers both TMDB's {id, media_type} shape and Trakt's nested
// {movie: {ids: {tmdb, imdb}}} / {show: {ids: {...}}} shape in one struct;
// whichever half is present wins.
type listItem struct {
	ID        json.Number `json:"id"`
	MediaType string      `json:"media_type"`

	Movie *listEntity `json:"movie"`
	Show  *listEntity `json:"show"`
}

type listEntity struct {
	IDs struct {
		Tmdb int32  `json:"tmdb"`
		Imdb string `json:"imdb"`
	} `json:"ids"`
}

type listResponse struct {
	Results []listItem `json:"results"`
	Items   []listItem `json:"items"` // Trakt list-items shape has no "results" wrapper field name
}

// FetchItems issues a GET against cfg.URL (falling back to a TMDB list
// endpoint built from cfg.ListID when URL is empty) and decodes whichever
// of the two known response shapes is present.
func (j *JSONListSource) FetchItems(ctx context.Context, cfg store.ImportListConfig) ([]RawItem, error) {
	url := cfg.URL
	if url == "" {
		url = fmt.Sprintf("https://api.themoviedb.org/3/list/%s", cfg.ListID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := j.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch list: unexpected status %d", resp.StatusCode)
	}

	var decoded listResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	raw := decoded.Results
	if len(raw) == 0 {
		raw = decoded.Items
	}

	items := make([]RawItem, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.toRawItem(cfg.MediaType); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (e listItem) toRawItem(defaultMediaType store.MediaType) (RawItem, bool) {
	if e.Movie != nil {
		return RawItem{TmdbID: e.Movie.IDs.Tmdb, ImdbID: e.Movie.IDs.Imdb, MediaType: store.MediaMovie}, true
	}
	if e.Show != nil {
		return RawItem{TmdbID: e.Show.IDs.Tmdb, ImdbID: e.Show.IDs.Imdb, MediaType: store.MediaSeries}, true
	}

	mediaType := defaultMediaType
	switch e.MediaType {
	case "movie":
		mediaType = store.MediaMovie
	case "tv", "series":
		mediaType = store.MediaSeries
	}

	if e.ID == "" {
		return RawItem{}, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(e.ID.String()), 10, 32)
	if err != nil {
		return RawItem{}, false
	}
	return RawItem{TmdbID: int32(n), MediaType: mediaType}, true
}
