// Package metrics defines the prometheus collectors reported while ingesting
// labelled pairs and training.
package metrics

import "github.com/prometheus/client_golang/prometheus"
import "github.com/prometheus/client_golang/prometheus/promauto"

const namespace = "specmatch"

// Ingestion tracks the labelled pairs input.
type Ingestion struct {
	Specs        prometheus.Gauge
	Declarations *prometheus.CounterVec
	Skipped      *prometheus.CounterVec
}

// NewIngestion registers the ingestion collectors on reg.
func NewIngestion(reg prometheus.Registerer) *Ingestion {
	f := promauto.With(reg)
	return &Ingestion{
		Specs: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "specs",
			Help:      "Number of registered specs.",
		}),
		Declarations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "declarations_total",
			Help:      "Distinct pair declarations recorded, by outcome.",
		}, []string{"outcome"}),
		Skipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "skipped_total",
			Help:      "Labelled rows not recorded, by reason.",
		}, []string{"reason"}),
	}
}

// Training tracks the gradient descent engine.
type Training struct {
	Batches  prometheus.Counter
	Jobs     prometheus.Counter
	Epoch    prometheus.Gauge
	MaxDelta prometheus.Gauge
	Loss     prometheus.Gauge
	Barrier  prometheus.Histogram
}

// NewTraining registers the training collectors on reg.
func NewTraining(reg prometheus.Registerer) *Training {
	f := promauto.With(reg)
	return &Training{
		Batches: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "train",
			Name:      "batches_total",
			Help:      "Mini-batches applied to the model.",
		}),
		Jobs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "train",
			Name:      "gradient_jobs_total",
			Help:      "Per-example gradient jobs dispatched.",
		}),
		Epoch: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "train",
			Name:      "epoch",
			Help:      "Last completed epoch.",
		}),
		MaxDelta: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "train",
			Name:      "max_delta",
			Help:      "Largest absolute weight change of the last batch.",
		}),
		Loss: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "train",
			Name:      "batch_loss",
			Help:      "Mean clamped log loss of the last batch before its update.",
		}),
		Barrier: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "train",
			Name:      "barrier_seconds",
			Help:      "Time spent waiting for a batch's gradient jobs.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}
