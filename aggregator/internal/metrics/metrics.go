// Package metrics exposes the aggregator's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_aggregator_records_consumed_total",
			Help: "Total number of records consumed from the bus",
		},
		[]string{"topic"},
	)

	DecodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_aggregator_decode_errors_total",
			Help: "Total number of payloads that could not be deserialized",
		},
		[]string{"topic"},
	)

	UnknownTopics = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_aggregator_unknown_topic_total",
			Help: "Total number of events ignored because their topic is not routed",
		},
	)

	BufferedRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_aggregator_buffered_records",
			Help: "Current number of records held in the buffer",
		},
		[]string{"feed"},
	)

	FlushAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_aggregator_flush_attempts_total",
			Help: "Total number of flush attempts by outcome",
		},
		[]string{"outcome"},
	)

	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_aggregator_dispatch_duration_seconds",
			Help:    "Duration of analytics dispatch calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Flush outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
)
