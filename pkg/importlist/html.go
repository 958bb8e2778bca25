package importlist

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/reelforge/reelforge/pkg/httpclient"
	"github.com/reelforge/reelforge/pkg/store"
)

// HTMLListSource scrapes a public list page that has no JSON API, pulling
// a TMDB or IMDb id out of each matched element with a configurable CSS
// selector pair. Grounded on the cardigann indexer's selector-based
// extraction: find every node matching ItemSelector, then read IDAttribute
// (an href or data-* attribute) off each one.
type HTMLListSource struct {
	http httpclient.HTTPClient

	// ItemSelector matches one element per list entry, e.g. "a.title-link".
	ItemSelector string
	// IDAttribute is the attribute holding the identifier, e.g. "href" or
	// "data-tmdb-id". Left empty, the element's text content is used.
	IDAttribute string
}

// NewHTMLListSource builds an HTMLListSource with the given selectors.
func NewHTMLListSource(client httpclient.HTTPClient, itemSelector, idAttribute string) *HTMLListSource {
	if client == nil {
		client = httpclient.New()
	}
	return &HTMLListSource{http: client, ItemSelector: itemSelector, IDAttribute: idAttribute}
}

// FetchItems downloads cfg.URL and extracts a TMDB or IMDb id from every
// element ItemSelector matches.
func (h *HTMLListSource) FetchItems(ctx context.Context, cfg store.ImportListConfig) ([]RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch list page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch list page: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse list page: %w", err)
	}

	var items []RawItem
	doc.Find(h.ItemSelector).Each(func(_ int, sel *goquery.Selection) {
		raw := extractText(sel, h.IDAttribute)
		if item, ok := parseIdentifier(raw, cfg.MediaType); ok {
			items = append(items, item)
		}
	})

	return items, nil
}

func extractText(sel *goquery.Selection, attribute string) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	if attribute != "" {
		val, exists := sel.Attr(attribute)
		if exists {
			return strings.TrimSpace(val)
		}
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

// parseIdentifier recognizes a bare numeric TMDB id, a "tt\d+" IMDb id, or
// either embedded in a URL path segment like "/movie/27205-inception".
func parseIdentifier(raw string, mediaType store.MediaType) (RawItem, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RawItem{}, false
	}

	segment := raw
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		segment = raw[idx+1:]
	}
	segment = strings.SplitN(segment, "-", 2)[0]

	if strings.HasPrefix(segment, "tt") {
		return RawItem{ImdbID: segment, MediaType: mediaType}, true
	}

	n, err := strconv.ParseInt(segment, 10, 32)
	if err != nil {
		return RawItem{}, false
	}
	return RawItem{TmdbID: int32(n), MediaType: mediaType}, true
}
