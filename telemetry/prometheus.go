// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package telemetry

import (
	"context"
	"errors"

	"github.com/hashicorp/go-zipcrack"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "zipcrack"

// Result labels of the runs counter.
const (
	ResultFound         = "found"
	ResultNotFound      = "not_found"
	ResultLimitExceeded = "limit_exceeded"
	ResultCanceled      = "canceled"
	ResultError         = "error"
)

// Collector holds the Prometheus metrics of verification runs.
type Collector struct {
	runs       *prometheus.CounterVec
	candidates *prometheus.CounterVec
	duration   prometheus.Histogram
}

// NewPrometheusCollector creates the metrics and registers them with reg.
func NewPrometheusCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of verification runs by result",
			},
			[]string{"result"},
		),
		candidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidates_total",
				Help:      "Total number of tested candidates by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of verification runs",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
	}

	for _, m := range []prometheus.Collector{c.runs, c.candidates, c.duration} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hook records the telemetry data of a run. It is meant to be passed to
// [zipcrack.WithTelemetryHook].
func (c *Collector) Hook(ctx context.Context, td *zipcrack.TelemetryData) {
	c.runs.WithLabelValues(result(td)).Inc()
	c.duration.Observe(td.VerificationDuration.Seconds())

	c.candidates.WithLabelValues("decrypt_failure").Add(float64(td.DecryptFailures))
	c.candidates.WithLabelValues("read_failure").Add(float64(td.ReadFailures))
	c.candidates.WithLabelValues("header_mismatch").Add(float64(td.HeaderMismatches))
	c.candidates.WithLabelValues("checksum_failure").Add(float64(td.ChecksumFailures))
	if td.Found {
		c.candidates.WithLabelValues("match").Inc()
	}
}

// result maps the outcome of a run to a label value.
func result(td *zipcrack.TelemetryData) string {
	switch {
	case td.Found:
		return ResultFound
	case errors.Is(td.LastError, zipcrack.ErrPasswordNotFound):
		return ResultNotFound
	case errors.Is(td.LastError, zipcrack.ErrMaxCandidatesExceeded):
		return ResultLimitExceeded
	case errors.Is(td.LastError, context.Canceled), errors.Is(td.LastError, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultError
	}
}
