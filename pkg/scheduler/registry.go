// Package scheduler implements the named-worker registry: fixed-interval
// background jobs with start/stop/restart, on-demand triggers, and a
// non-overlap guard, built on top of go-co-op/gocron.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/metrics"
)

// Status is a worker's current lifecycle state.
type Status string

const (
	StatusStopped Status = "stopped"
	StatusRunning Status = "running"
	StatusError   Status = "error"
)

// MinInterval is the smallest interval SetInterval will accept.
const MinInterval = time.Second

// Func is the body of a worker's run. It is expected to return promptly
// when ctx is cancelled, finishing its current external call but aborting
// before the next one.
type Func func(ctx context.Context) error

// Config describes one worker at registration time.
type Config struct {
	ID          string
	Name        string
	Description string
	Interval    time.Duration
	Run         Func
	// SkipInitialRun, when true, waits one interval before the first tick.
	SkipInitialRun bool
}

// Info is the read-only snapshot returned by List/Get.
type Info struct {
	ID          string
	Name        string
	Description string
	Interval    time.Duration
	Status      Status
	LastRunAt   time.Time
	LastError   string
}

type worker struct {
	cfg        Config
	mu         sync.Mutex
	status     Status
	lastRunAt  time.Time
	lastError  string
	job        gocron.Job
	executing  bool
}

// PersistedState is the full row pkg/scheduler asks a StatePersister to
// durably record. It carries the registration fields too, not just the
// mutable status, since a naive upsert would otherwise blank them on every
// run.
type PersistedState struct {
	ID             string
	Name           string
	Description    string
	Interval       time.Duration
	Status         string
	LastRunAt      time.Time
	LastError      string
	SkipInitialRun bool
}

// StatePersister durably records a worker's last-known status so it
// survives a process restart; cmd wires store.Store to this via a small
// adapter.
type StatePersister interface {
	UpsertWorkerState(ctx context.Context, s PersistedState) error
}

// Registry owns a gocron.Scheduler and the bookkeeping gocron itself doesn't
// track: named workers, status, last-run/last-error, and interval mutation.
type Registry struct {
	mu      sync.RWMutex
	gocron  gocron.Scheduler
	workers map[string]*worker
	order   []string
	persist StatePersister
}

// New starts the underlying gocron scheduler and returns an empty registry.
// persist may be nil, in which case worker status is kept in memory only.
func New(persist StatePersister) (*Registry, error) {
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}

	r := &Registry{
		gocron:  gs,
		workers: make(map[string]*worker),
		persist: persist,
	}
	gs.Start()
	return r, nil
}

// Register adds a worker and schedules it at its configured interval in
// singleton-reschedule mode, so an overrunning execution never overlaps
// with its own next tick.
func (r *Registry) Register(cfg Config) error {
	if cfg.Interval < MinInterval {
		return fmt.Errorf("interval must be >= %s", MinInterval)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workers[cfg.ID]; exists {
		return fmt.Errorf("worker %q already registered", cfg.ID)
	}

	w := &worker{cfg: cfg, status: StatusStopped}

	jobOpts := []gocron.JobOption{
		gocron.WithName(cfg.Name),
		gocron.WithTags(cfg.ID),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if cfg.SkipInitialRun {
		jobOpts = append(jobOpts, gocron.WithStartAt(gocron.WithStartDateTime(time.Now().Add(cfg.Interval))))
	} else {
		jobOpts = append(jobOpts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	job, err := r.gocron.NewJob(
		gocron.DurationJob(cfg.Interval),
		gocron.NewTask(func() { r.execute(cfg.ID) }),
		jobOpts...,
	)
	if err != nil {
		return fmt.Errorf("schedule worker %q: %w", cfg.ID, err)
	}

	w.job = job
	w.status = StatusRunning
	r.workers[cfg.ID] = w
	for _, id := range r.order {
		if id == cfg.ID {
			return nil
		}
	}
	r.order = append(r.order, cfg.ID)
	return nil
}

func (r *Registry) execute(id string) {
	r.mu.RLock()
	w, ok := r.workers[id]
	r.mu.RUnlock()
	if !ok {
		return
	}

	// Non-overlap guard: covers both gocron-scheduled ticks and RunNow,
	// which bypasses gocron's own singleton mode by calling execute directly.
	w.mu.Lock()
	if w.executing {
		w.mu.Unlock()
		return
	}
	w.executing = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.executing = false
		w.mu.Unlock()
	}()

	ctx := context.Background()
	log := logger.FromCtx(ctx, "worker", id)

	defer func() {
		if rec := recover(); rec != nil {
			w.mu.Lock()
			w.status = StatusError
			w.lastError = fmt.Sprintf("panic: %v", rec)
			w.mu.Unlock()
			log.Errorw("worker panicked", "panic", rec)
			metrics.WorkerRuns.WithLabelValues(id, "panic").Inc()
		}
	}()

	start := time.Now()
	err := w.cfg.Run(ctx)

	w.mu.Lock()
	w.lastRunAt = start
	if err != nil {
		w.status = StatusError
		w.lastError = err.Error()
	} else {
		w.status = StatusRunning
		w.lastError = ""
	}
	w.mu.Unlock()

	if r.persist != nil {
		w.mu.Lock()
		ps := PersistedState{
			ID:             w.cfg.ID,
			Name:           w.cfg.Name,
			Description:    w.cfg.Description,
			Interval:       w.cfg.Interval,
			Status:         string(w.status),
			LastRunAt:      w.lastRunAt,
			LastError:      w.lastError,
			SkipInitialRun: w.cfg.SkipInitialRun,
		}
		w.mu.Unlock()
		if perr := r.persist.UpsertWorkerState(ctx, ps); perr != nil {
			log.Errorw("persist worker state failed", "error", perr)
		}
	}

	if err != nil {
		log.Errorw("worker run failed", "error", err)
		metrics.WorkerRuns.WithLabelValues(id, "error").Inc()
		return
	}
	metrics.WorkerRuns.WithLabelValues(id, "ok").Inc()
}

// Start resumes a stopped worker's schedule.
func (r *Registry) Start(id string, skipInitialRun bool) error {
	w, err := r.get(id)
	if err != nil {
		return err
	}

	w.mu.Lock()
	if w.status != StatusStopped {
		w.mu.Unlock()
		return nil
	}
	cfg := w.cfg
	w.mu.Unlock()

	cfg.SkipInitialRun = skipInitialRun
	r.mu.Lock()
	delete(r.workers, id)
	r.mu.Unlock()
	return r.Register(cfg)
}

// Stop pauses a worker's schedule; its underlying gocron job is removed so
// no further ticks fire until Start or Restart re-adds it.
func (r *Registry) Stop(id string) error {
	w, err := r.get(id)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.job != nil {
		_ = r.gocron.RemoveJob(w.job.ID())
	}
	w.status = StatusStopped
	return nil
}

// Restart stops then re-registers the worker at its current interval.
func (r *Registry) Restart(id string) error {
	w, err := r.get(id)
	if err != nil {
		return err
	}

	cfg := w.cfg
	if err := r.Stop(id); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.workers, id)
	r.mu.Unlock()

	return r.Register(cfg)
}

// SetInterval changes a worker's tick period, re-registering its gocron job.
func (r *Registry) SetInterval(id string, interval time.Duration) error {
	if interval < MinInterval {
		return fmt.Errorf("interval must be >= %s", MinInterval)
	}

	w, err := r.get(id)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.cfg.Interval = interval
	w.mu.Unlock()

	return r.Restart(id)
}

// RunNow triggers an out-of-band execution without waiting for the next
// scheduled tick. It runs off the caller's goroutine.
func (r *Registry) RunNow(id string) error {
	if _, err := r.get(id); err != nil {
		return err
	}
	go r.execute(id)
	return nil
}

// List returns a snapshot of every registered worker in registration order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		w := r.workers[id]
		out = append(out, w.snapshot())
	}
	return out
}

// Get returns one worker's snapshot.
func (r *Registry) Get(id string) (Info, error) {
	w, err := r.get(id)
	if err != nil {
		return Info{}, err
	}
	return w.snapshot(), nil
}

func (w *worker) snapshot() Info {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Info{
		ID:          w.cfg.ID,
		Name:        w.cfg.Name,
		Description: w.cfg.Description,
		Interval:    w.cfg.Interval,
		Status:      w.status,
		LastRunAt:   w.lastRunAt,
		LastError:   w.lastError,
	}
}

func (r *Registry) get(id string) (*worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[id]
	if !ok {
		return nil, fmt.Errorf("worker %q not registered", id)
	}
	return w, nil
}

// Shutdown stops workers in reverse-registration order, giving each up to
// grace to finish its current tick, then shuts down the underlying
// scheduler.
func (r *Registry) Shutdown(grace time.Duration) error {
	r.mu.RLock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	r.mu.RUnlock()

	for i := len(ids) - 1; i >= 0; i-- {
		_ = r.Stop(ids[i])
	}

	done := make(chan error, 1)
	go func() { done <- r.gocron.Shutdown() }()

	select {
	case err := <-done:
		return err
	case <-time.After(grace):
		return fmt.Errorf("scheduler shutdown exceeded grace period of %s", grace)
	}
}
