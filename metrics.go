package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeProcessed = "processed"
	outcomeFailed    = "failed"
	outcomeSkipped   = "skipped"
	outcomeRejected  = "rejected"
)

type workerMetrics struct {
	runs       *prometheus.CounterVec
	compute    prometheus.Histogram
	samples    prometheus.Histogram
	peakMemory prometheus.Gauge
}

func newWorkerMetrics(reg prometheus.Registerer) *workerMetrics {
	m := &workerMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statsworker_runs_total",
			Help: "Analysis runs handled, by outcome.",
		}, []string{"outcome"}),
		compute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statsworker_compute_seconds",
			Help:    "Time spent computing one summary.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		samples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statsworker_samples",
			Help:    "Number of samples per analysis run.",
			Buckets: prometheus.ExponentialBuckets(10, 10, 6),
		}),
		peakMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "statsworker_peak_memory_bytes",
			Help: "Peak resident memory seen during the last computation.",
		}),
	}
	reg.MustRegister(m.runs, m.compute, m.samples, m.peakMemory)
	return m
}

func (m *workerMetrics) observe(meas measurement) {
	m.runs.WithLabelValues(outcomeProcessed).Inc()
	m.compute.Observe(meas.Duration.Seconds())
	m.samples.Observe(float64(meas.Summary.Count))
	m.peakMemory.Set(meas.PeakRSS)
}

func (m *workerMetrics) outcome(outcome string) {
	m.runs.WithLabelValues(outcome).Inc()
}

// serveMetrics serves /metrics until ctx is done.
func serveMetrics(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
