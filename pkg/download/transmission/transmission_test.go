package transmission_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/download"
	"github.com/reelforge/reelforge/pkg/download/transmission"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*transmission.Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	port := 0
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		require.NoError(t, err)
	}

	c := transmission.New(server.Client(), u.Scheme, u.Hostname(), port)
	return c, server.Close
}

func TestAdd_ReturnsAddedTorrentID(t *testing.T) {
	var calls int
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "torrent-add", body["method"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": "success",
			"arguments": map[string]any{
				"torrent-added": map[string]any{"id": 7},
			},
		})
	})
	defer closeFn()

	result, err := c.Add(context.Background(), download.AddRequest{
		URL:      "magnet:?xt=urn:btih:abc",
		SavePath: "/downloads",
		Protocol: download.ProtocolTorrent,
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "7", result.ClientID)
	assert.Equal(t, 1, calls)
}

func TestAdd_DuplicateReportsExistingID(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": "success",
			"arguments": map[string]any{
				"torrent-duplicate": map[string]any{"id": 3},
			},
		})
	})
	defer closeFn()

	result, err := c.Add(context.Background(), download.AddRequest{
		URL:      "magnet:?xt=urn:btih:abc",
		Protocol: download.ProtocolTorrent,
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "3", result.ClientID)
	assert.Equal(t, "already queued", result.Message)
}

func TestAdd_RejectsNonTorrentProtocol(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach the server for an unsupported protocol")
	})
	defer closeFn()

	_, err := c.Add(context.Background(), download.AddRequest{URL: "nzb://x", Protocol: download.ProtocolUsenet})
	assert.Error(t, err)
}

func TestList_RetriesOnSessionConflict(t *testing.T) {
	var calls int
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("X-Transmission-Session-Id", "new-session")
			w.WriteHeader(http.StatusConflict)
			return
		}

		assert.Equal(t, "new-session", r.Header.Get("X-Transmission-Session-Id"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": "success",
			"arguments": map[string]any{
				"torrents": []map[string]any{
					{
						"id":           1,
						"name":         "torrent 1",
						"downloadDir":  "/downloads",
						"totalSize":    1000,
						"percentDone":  1.0,
						"rateDownload": 0,
						"status":       6,
						"files":        []map[string]any{{"name": "file1.mkv"}},
					},
				},
			},
		})
	})
	defer closeFn()

	jobs, err := c.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "1", jobs[0].ClientID)
	assert.True(t, jobs[0].Done)
	assert.Equal(t, []string{"/downloads/file1.mkv"}, jobs[0].FilePaths)
	assert.Equal(t, 2, calls)
}

func TestRemove_InvalidID(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach the server for an invalid id")
	})
	defer closeFn()

	err := c.Remove(context.Background(), "not-a-number", false)
	assert.Error(t, err)
}

func TestRemove_Success(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "torrent-remove", body["method"])
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "success", "arguments": map[string]any{}})
	})
	defer closeFn()

	require.NoError(t, c.Remove(context.Background(), "5", true))
}
