package sabnzbd_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/download"
	"github.com/reelforge/reelforge/pkg/download/sabnzbd"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*sabnzbd.Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	c := sabnzbd.New(server.Client(), u.Scheme, u.Host, "test-key")
	return c, server.Close
}

func TestAdd_Success(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "addurl", r.URL.Query().Get("mode"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"nzo_ids": []string{"SABnzbd_nzo_abc123"},
		})
	})
	defer closeFn()

	result, err := c.Add(context.Background(), download.AddRequest{URL: "http://indexer.example/nzb/1", Protocol: download.ProtocolUsenet})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "SABnzbd_nzo_abc123", result.ClientID)
}

func TestAdd_RejectsNonUsenetProtocol(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach the server for an unsupported protocol")
	})
	defer closeFn()

	_, err := c.Add(context.Background(), download.AddRequest{URL: "x", Protocol: download.ProtocolTorrent})
	assert.Error(t, err)
}

func TestAdd_ErrorStatus(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": false, "error": "no servers configured"})
	})
	defer closeFn()

	_, err := c.Add(context.Background(), download.AddRequest{URL: "http://x", Protocol: download.ProtocolUsenet})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no servers configured")
}

func TestList_FiltersByCategory(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "queue", r.URL.Query().Get("mode"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"queue": map[string]any{
				"slots": []map[string]any{
					{"nzo_id": "1", "filename": "a", "cat": "movies", "percentage": "50", "mb": "1024", "status": "Downloading"},
					{"nzo_id": "2", "filename": "b", "cat": "tv", "percentage": "100", "mb": "512", "status": "Completed"},
				},
			},
		})
	})
	defer closeFn()

	jobs, err := c.List(context.Background(), "movies")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "1", jobs[0].ClientID)
	assert.Equal(t, int64(1024*1024*1024), jobs[0].SizeBytes)
	assert.False(t, jobs[0].Done)
}

func TestRemove_FailureStatus(t *testing.T) {
	c, closeFn := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "delete", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("del_files"))
		_ = json.NewEncoder(w).Encode(map[string]any{"status": false})
	})
	defer closeFn()

	err := c.Remove(context.Background(), "SABnzbd_nzo_abc123", true)
	assert.Error(t, err)
}
