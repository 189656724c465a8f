package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depscan_parsing_hits_total",
		Help: "Total number of successful structural grammar matches.",
	}, []string{"language"})

	ParsingMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depscan_parsing_misses_total",
		Help: "Total number of failed structural grammar matches.",
	}, []string{"language"})

	FilesScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depscan_files_scanned_total",
		Help: "Total number of source files handed to a language parser.",
	}, []string{"language"})

	FilesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depscan_files_skipped_total",
		Help: "Total number of files skipped by extension or ignore rules.",
	})

	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "depscan_phase_seconds",
		Help:    "Time spent in one analysis phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	GraphNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "depscan_graph_nodes_total",
		Help: "Number of nodes in a graph representation.",
	}, []string{"graph"})

	GraphEdges = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "depscan_graph_edges_total",
		Help: "Number of edges in a graph representation.",
	}, []string{"graph"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depscan_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
