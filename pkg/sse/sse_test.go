package sse_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/sse"
)

func TestHub_BroadcastDeliversToConnectedClient(t *testing.T) {
	hub := sse.New()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Give ServeHTTP time to register the client before broadcasting.
	for i := 0; i < 50 && hub.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount())

	hub.Broadcast(sse.Event{Type: "activity", Data: map[string]any{"eventType": "IMPORTED"}})

	buf := make([]byte, 512)
	n, err := resp.Body.Read(buf)
	require.NoError(t, err)

	body := string(buf[:n])
	assert.Contains(t, body, "event: connected")
}

func TestHub_BroadcastWithNoClientsIsNoop(t *testing.T) {
	hub := sse.New()
	assert.NotPanics(t, func() {
		hub.Broadcast(sse.Event{Type: "activity"})
	})
}
