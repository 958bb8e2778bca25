// Package notify dispatches user-facing notifications about grabs,
// imports, and failures to one or more webhook targets. No third-party
// notification router is declared anywhere in the pack's dependency
// trees, so targets are posted to with net/http directly; the
// queue-plus-worker-pool shape (bounded channel, fixed worker count,
// non-blocking enqueue that drops and logs on a full queue) mirrors the
// notification service the rest of the retrieval pack ships.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/reelforge/reelforge/pkg/logger"
)

const (
	defaultQueueSize = 100
	defaultWorkers   = 2
)

// EventType identifies what happened. Only EventGrabbed is also written
// verbatim as an activity-log event_type; the catalog logs its own
// lowercase event types.
type EventType string

const (
	EventGrabbed    EventType = "GRABBED"
	EventImported   EventType = "IMPORTED"
	EventFailed     EventType = "FAILED"
	EventDeleted    EventType = "DELETED"
	EventHealthWarn EventType = "HEALTH_WARN"
)

// MediaRef identifies the entity a notification is about, mirroring
// store.ActivityEntry's (EntityType, EntityID) pair.
type MediaRef struct {
	EntityType string
	EntityID   int64
	Title      string
}

// Event is one notifiable occurrence.
type Event struct {
	Type      EventType
	Message   string
	MediaRef  MediaRef
	Timestamp time.Time
}

// Notifier is implemented by anything that can deliver an Event. Notify
// must never block its caller on network I/O.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Target is one configured webhook endpoint. URL is POSTed a JSON body
// for every event whose Type is present in Events (or every event, if
// Events is empty).
type Target struct {
	Name   string
	URL    string
	Events []EventType
}

// Service fans Notify calls out to every configured Target over a
// bounded queue drained by a small worker pool, so a slow or unreachable
// webhook can never stall the caller (AutoSearch, DownloadLifecycle,
// ...).
type Service struct {
	targets    []Target
	httpClient *http.Client
	queue      chan Event
	workers    int
	startOnce  sync.Once
}

var _ Notifier = (*Service)(nil)

// Config configures a Service.
type Config struct {
	Targets    []Target
	HTTPClient *http.Client
	QueueSize  int
	Workers    int
}

// New builds a Service from cfg. An empty Targets list is valid: Notify
// becomes a no-op drain, which lets callers always hold a non-nil
// Notifier regardless of whether the operator configured any webhooks.
func New(cfg Config) *Service {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Service{
		targets:    cfg.Targets,
		httpClient: httpClient,
		queue:      make(chan Event, queueSize),
		workers:    workers,
	}
}

// Start launches the worker pool. Safe to call once; later calls are
// no-ops. Workers exit when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		for i := 0; i < s.workers; i++ {
			go s.worker(ctx)
		}
	})
}

// Notify enqueues event for delivery and returns immediately. If the
// queue is full the event is dropped and logged rather than blocking
// the caller — a stalled webhook must never stall a search or import.
func (s *Service) Notify(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case s.queue <- event:
	default:
		logger.FromCtx(ctx).Warnw("notify: queue full, dropping event", "type", event.Type, "entity", event.MediaRef.EntityType)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-s.queue:
			s.dispatch(ctx, event)
		}
	}
}

func (s *Service) dispatch(ctx context.Context, event Event) {
	for _, target := range s.targets {
		if !allows(target, event.Type) {
			continue
		}
		if err := s.send(ctx, target, event); err != nil {
			logger.FromCtx(ctx).Errorw("notify: delivery failed", "target", target.Name, "type", event.Type, "err", err)
		}
	}
}

func allows(target Target, eventType EventType) bool {
	if len(target.Events) == 0 {
		return true
	}
	for _, t := range target.Events {
		if t == eventType {
			return true
		}
	}
	return false
}

type webhookPayload struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Entity    string `json:"entity,omitempty"`
	EntityID  int64  `json:"entityId,omitempty"`
	Title     string `json:"title,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (s *Service) send(ctx context.Context, target Target, event Event) error {
	body, err := json.Marshal(webhookPayload{
		Type:      string(event.Type),
		Message:   event.Message,
		Entity:    event.MediaRef.EntityType,
		EntityID:  event.MediaRef.EntityID,
		Title:     event.MediaRef.Title,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %q", resp.StatusCode, target.Name)
	}
	return nil
}
