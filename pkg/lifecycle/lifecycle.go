// Package lifecycle polls configured download clients for job progress and,
// once a job completes, imports its largest video file into the library:
// computing the canonical destination with pkg/naming, moving the file
// hardlink-first/copy-fallback, and updating the matching Movie or Episode
// row.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/download"
	"github.com/reelforge/reelforge/pkg/io"
	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/machine"
	"github.com/reelforge/reelforge/pkg/mediainfo"
	"github.com/reelforge/reelforge/pkg/naming"
	"github.com/reelforge/reelforge/pkg/notify"
	"github.com/reelforge/reelforge/pkg/sse"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

// statuses an active Download can be polled in.
const (
	statusQueued      = "queued"
	statusDownloading = "downloading"
	statusImporting   = "importing"
	statusCompleted   = "completed"
	statusFailed      = "failed"
	statusCancelled   = "cancelled"
)

// newDownloadMachine encodes the monotonic status order: queued ->
// downloading -> importing -> completed/failed, with cancelled reachable
// from any non-terminal state.
func newDownloadMachine(current string) *machine.StateMachine[string] {
	return machine.New(current,
		machine.From(statusQueued).To(statusDownloading, statusImporting, statusFailed, statusCancelled),
		machine.From(statusDownloading).To(statusImporting, statusFailed, statusCancelled),
		machine.From(statusImporting).To(statusCompleted, statusFailed, statusCancelled),
	)
}

// Failure codes recorded as a Download's error_message on an import failure.
const (
	ErrCodeNoVideo = "ERR_NO_VIDEO"
	ErrCodeFS      = "ERR_FS"
)

// broadcaster is the narrow slice of pkg/sse.Hub the importer needs;
// declared locally so this package depends on sse's Event type alone, not
// its HTTP-serving surface.
type broadcaster interface {
	Broadcast(event sse.Event)
}

// DownloadLifecycle polls every configured download client for progress on
// active downloads and drives FileImporter once a job completes.
type DownloadLifecycle struct {
	store       store.Store
	catalog     *catalog.Catalog
	clients     map[string]download.Client // keyed by download.ProtocolTorrent / ProtocolUsenet
	probe       mediainfo.Probe             // nil is valid: falls back to filename-derived info only
	fileio      io.FileIO
	notifier    notify.Notifier
	broadcaster broadcaster
}

// Config wires DownloadLifecycle's collaborators.
type Config struct {
	Store       store.Store
	Catalog     *catalog.Catalog
	Clients     map[string]download.Client
	Probe       mediainfo.Probe
	FileIO      io.FileIO
	Notifier    notify.Notifier
	Broadcaster broadcaster
}

// New builds a DownloadLifecycle from cfg.
func New(cfg Config) *DownloadLifecycle {
	return &DownloadLifecycle{
		store:       cfg.Store,
		catalog:     cfg.Catalog,
		clients:     cfg.Clients,
		probe:       cfg.Probe,
		fileio:      cfg.FileIO,
		notifier:    cfg.Notifier,
		broadcaster: cfg.Broadcaster,
	}
}

// Result summarizes one RunOnce pass.
type Result struct {
	Polled   int
	Imported int
	Failed   int
}

// RunOnce polls every active Download, updates its progress/status from the
// responsible client, and imports any job that has just completed.
func (l *DownloadLifecycle) RunOnce(ctx context.Context) (Result, error) {
	var result Result

	for _, status := range []string{statusQueued, statusDownloading, statusImporting} {
		downloads, err := l.store.ListDownloadsByStatus(ctx, status)
		if err != nil {
			return result, fmt.Errorf("list downloads by status %q: %w", status, err)
		}

		for _, d := range downloads {
			result.Polled++
			imported, err := l.poll(ctx, d)
			if err != nil {
				result.Failed++
				logger.FromCtx(ctx).Errorw("lifecycle: poll failed", "download_id", d.ID, "err", err)
				continue
			}
			if imported {
				result.Imported++
			}
		}
	}

	return result, nil
}

// poll resolves the responsible client's view of d, updates d's stored
// progress/status, and triggers import on a fresh completion. d is mutated
// in place so the caller's summary counts reflect the new status. The bool
// return is true only when this call is the one that just drove d through
// a successful import — it exists so RunOnce can count imports by
// transition rather than by re-inspecting a status that stays "importing"
// across every subsequent poll of a stuck row.
func (l *DownloadLifecycle) poll(ctx context.Context, d *model.Download) (bool, error) {
	resolved, found := l.findJob(ctx, d)
	if !found {
		logger.FromCtx(ctx).Warnw("lifecycle: no client reports this job, leaving status unchanged", "download_id", d.ID, "client_job_id", d.ClientJobID)
		return false, nil
	}

	wasImporting := d.Status == statusImporting
	if resolved.job.Done && !wasImporting {
		if err := l.transition(ctx, d, statusImporting, 100, ""); err != nil {
			return false, fmt.Errorf("mark importing: %w", err)
		}

		if err := l.importJob(ctx, d, resolved); err != nil {
			logger.FromCtx(ctx).Errorw("lifecycle: import failed", "download_id", d.ID, "err", err)
			if markErr := l.transition(ctx, d, statusFailed, d.Progress, err.Error()); markErr != nil {
				return false, fmt.Errorf("mark failed: %w", markErr)
			}
			return false, err
		}
		return true, nil
	}

	if wasImporting {
		// Already past the transition; a stuck importing row means a prior
		// pass died mid-import. Leave it for an operator to retry rather
		// than silently re-triggering every poll.
		return false, nil
	}

	if err := l.transition(ctx, d, statusDownloading, resolved.job.Progress, ""); err != nil {
		return false, fmt.Errorf("update progress: %w", err)
	}
	return false, nil
}

// transition persists a status change after validating it against the
// download state machine; a same-status update (a progress refresh) skips
// validation. d is mutated so the caller observes the new status.
func (l *DownloadLifecycle) transition(ctx context.Context, d *model.Download, status string, progress float64, errMsg string) error {
	if d.Status != status {
		if err := newDownloadMachine(d.Status).ToState(status); err != nil {
			return fmt.Errorf("download %d: %s -> %s: %w", d.ID, d.Status, status, err)
		}
	}
	if err := l.store.UpdateDownloadStatus(ctx, int64(d.ID), status, progress, errMsg); err != nil {
		return err
	}
	d.Status = status
	d.Progress = progress
	return nil
}

// resolvedJob pairs a job with the protocol of the client that reported it,
// since nothing about download.Job itself identifies its source client.
type resolvedJob struct {
	job      download.Job
	client   download.Client
	protocol string
}

// findJob searches every configured client's queue for d's job, since a
// Download row carries no stored protocol/client identity — only the
// client-assigned job id recorded at grab time.
func (l *DownloadLifecycle) findJob(ctx context.Context, d *model.Download) (resolvedJob, bool) {
	if d.ClientJobID == "" {
		return resolvedJob{}, false
	}

	for protocol, client := range l.clients {
		jobs, err := client.List(ctx, d.MediaType)
		if err != nil {
			logger.FromCtx(ctx).Warnw("lifecycle: list failed", "download_id", d.ID, "err", err)
			continue
		}
		for _, job := range jobs {
			if job.ClientID == d.ClientJobID {
				return resolvedJob{job: job, client: client, protocol: protocol}, true
			}
		}
	}
	return resolvedJob{}, false
}

// keepSourceFiles reports whether completed jobs from this client's
// protocol should keep their source files rather than being cleaned up
// after import. Torrent clients always keep (deleting would stop seeding);
// usenet clients defer to the configured DownloadClientConfig flag.
func (l *DownloadLifecycle) keepSourceFiles(ctx context.Context, protocol string) bool {
	if protocol == download.ProtocolTorrent {
		return true
	}

	configs, err := l.store.ListDownloadClientConfigs(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warnw("lifecycle: failed to load download client configs, defaulting to delete source", "err", err)
		return false
	}
	for _, c := range configs {
		if c.Protocol == protocol {
			return c.KeepSourceFiles
		}
	}
	return false
}

func (l *DownloadLifecycle) namingEngine(ctx context.Context) (*naming.Engine, error) {
	cfg, err := l.store.GetNamingConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("get naming config: %w", err)
	}
	return naming.New(cfg), nil
}

func (l *DownloadLifecycle) importJob(ctx context.Context, d *model.Download, resolved resolvedJob) error {
	switch d.MediaType {
	case string(store.MediaMovie):
		return l.importMovie(ctx, d, resolved)
	case string(store.MediaSeries):
		return l.importEpisode(ctx, d, resolved)
	default:
		return fmt.Errorf("unknown media type %q for download %d", d.MediaType, d.ID)
	}
}

var errNoVideoFile = errors.New(ErrCodeNoVideo)
