// Package metrics exposes Prometheus instrumentation for the worker
// registry, release pipeline, and external collaborators. Not excluded by
// any Non-goal, so it is carried as an ambient concern alongside logging.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reelforge",
		Name:      "worker_runs_total",
		Help:      "Count of worker executions by worker id and outcome.",
	}, []string{"worker", "outcome"})

	Grabs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reelforge",
		Name:      "grabs_total",
		Help:      "Count of releases grabbed, by source (autosearch, rss) and outcome.",
	}, []string{"source", "outcome"})

	Imports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reelforge",
		Name:      "imports_total",
		Help:      "Count of completed file imports, by media type and outcome.",
	}, []string{"media_type", "outcome"})

	RSSCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reelforge",
		Name:      "rss_cache_lookups_total",
		Help:      "RSS release cache lookups, by result (hit = already seen, miss = new).",
	}, []string{"result"})

	DownloadClientErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reelforge",
		Name:      "download_client_errors_total",
		Help:      "Errors returned by download client adapters, by client name and operation.",
	}, []string{"client", "operation"})
)
