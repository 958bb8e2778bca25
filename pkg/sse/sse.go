// Package sse fans activity events out to connected browser clients over
// Server-Sent Events. Grounded on autobrr-qui's RSSSSEHandler: a registry of
// per-client buffered channels guarded by a mutex, a non-blocking broadcast
// that drops on a full client buffer rather than stalling the publisher, and
// the "event: <type>\ndata: <json>\n\n" wire format.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/reelforge/reelforge/pkg/logger"
)

// clientBuffer bounds how many events a slow client can fall behind by
// before events are dropped for it.
const clientBuffer = 32

// heartbeatInterval keeps idle connections alive through proxies that
// reap silent streams.
const heartbeatInterval = 30 * time.Second

// Event is one message published to every connected client.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Hub tracks connected clients and fans Broadcast calls out to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// New builds an empty Hub.
func New() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// streamedActivity is the set of activity event types clients actually get
// pushed; internal bookkeeping events stay in the activity log only.
var streamedActivity = map[string]bool{
	"GRABBED":        true,
	"DOWNLOADED":     true,
	"IMPORTED":       true,
	"UNMONITORED":    true,
	"SCAN_COMPLETED": true,
	"FAILED":         true,
	"DELETED":        true,
}

// Broadcast publishes event to every connected client. A client whose buffer
// is full is skipped rather than blocking the caller — a stalled browser tab
// must never stall a worker. Activity events outside streamedActivity are
// dropped at the hub.
func (h *Hub) Broadcast(event Event) {
	if event.Type == "activity" && !streamedActivity[activityEventType(event)] {
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.events <- event:
		default:
		}
	}
}

// ServeHTTP upgrades the request into a long-lived SSE stream and registers
// the connection as a client until the request context ends.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	c := &client{
		events: make(chan Event, clientBuffer),
		done:   make(chan struct{}),
	}
	h.add(c)
	defer h.remove(c)

	if err := h.send(w, flusher, Event{Type: "connected", Timestamp: time.Now().Unix()}); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-heartbeat.C:
			if err := h.send(w, flusher, Event{Type: "heartbeat", Timestamp: time.Now().Unix()}); err != nil {
				return
			}
		case event := <-c.events:
			if err := h.send(w, flusher, event); err != nil {
				logger.FromCtx(ctx).Debugw("sse: send failed", "err", err)
				return
			}
		}
	}
}

func activityEventType(event Event) string {
	data, ok := event.Data.(map[string]any)
	if !ok {
		return ""
	}
	t, _ := data["eventType"].(string)
	return t
}

func (h *Hub) send(w http.ResponseWriter, flusher http.Flusher, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	c.once.Do(func() { close(c.done) })

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// ClientCount reports how many clients are currently connected, mostly
// useful for /healthz-style introspection.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
