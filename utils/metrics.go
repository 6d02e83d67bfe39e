package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricImportCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "challenge_imports_total",
		Help: "Number of spreadsheet imports, by schema and outcome",
	}, []string{"schema", "status"})

	MetricImportLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "challenge_import_duration_seconds",
		Help:    "Duration of a spreadsheet import, from decoding to commit",
		Buckets: prometheus.DefBuckets,
	}, []string{"schema"})

	MetricImportedStores = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "challenge_imported_stores_total",
		Help: "Number of store snapshots written",
	}, []string{"schema"})

	MetricLeaderboardGoal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "challenge_leaderboard_projected_goal",
		Help: "Last projected goal served on the leaderboard",
	})
)

const (
	MetricStatusSuccess  = "success"
	MetricStatusRejected = "rejected"
	MetricStatusFailed   = "failed"
)
