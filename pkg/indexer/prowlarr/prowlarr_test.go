package prowlarr_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/indexer"
	"github.com/reelforge/reelforge/pkg/indexer/prowlarr"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*prowlarr.Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)

	c, err := prowlarr.New(prowlarr.Config{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	return c, server.Close
}

func TestNew_RequiresBaseURLAndAPIKey(t *testing.T) {
	_, err := prowlarr.New(prowlarr.Config{APIKey: "key"})
	assert.Error(t, err)

	_, err = prowlarr.New(prowlarr.Config{BaseURL: "http://localhost:9696"})
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	c, close := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "Arrival", r.URL.Query().Get("query"))
		assert.Equal(t, "42", r.URL.Query().Get("indexerIds"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"title":       "Arrival.2016.1080p.BluRay.x264-GROUP",
				"downloadUrl": "http://indexer.example/dl/1",
				"guid":        "guid-1",
				"size":        4_000_000_000,
				"seeders":     25,
				"indexer":     "TestIndexer",
			},
		})
	})
	defer close()

	candidates, err := c.Search(context.Background(), 42, indexer.MediaMovie, "Arrival")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Arrival.2016.1080p.BluRay.x264-GROUP", candidates[0].Title)
	assert.Equal(t, 25, candidates[0].Seeders)
	assert.Equal(t, "TestIndexer", candidates[0].Indexer)
}

func TestSearch_UnexpectedStatus(t *testing.T) {
	c, close := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})
	defer close()

	_, err := c.Search(context.Background(), 1, indexer.MediaMovie, "query")
	assert.Error(t, err)
}

func TestFetchRSS_FallsBackToDownloadURLWhenGUIDMissing(t *testing.T) {
	c, close := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"title":       "Some.Release",
				"downloadUrl": "http://indexer.example/dl/2",
				"size":        100,
			},
		})
	})
	defer close()

	items, err := c.FetchRSS(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "http://indexer.example/dl/2", items[0].GUID)
}

func TestTest_IndexerStates(t *testing.T) {
	c, close := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Enabled Tracker", "enable": true},
			{"id": 2, "name": "Disabled Tracker", "enable": false},
		})
	})
	defer close()

	result, err := c.Test(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.OK)

	result, err = c.Test(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, result.OK)

	result, err = c.Test(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, result.OK)
}

func TestSearch_SkipsReleasesWithoutTitleOrURL(t *testing.T) {
	c, close := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"title": nil, "downloadUrl": "http://indexer.example/dl/1"},
			{"title": "No.URL.Release"},
			{"title": "Good.Release", "downloadUrl": "http://indexer.example/dl/3", "seeders": nil},
		})
	})
	defer close()

	candidates, err := c.Search(context.Background(), 1, indexer.MediaMovie, "query")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Good.Release", candidates[0].Title)
	assert.Equal(t, 0, candidates[0].Seeders)
}
