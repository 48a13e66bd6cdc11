package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"statsworker/stats"
)

type worker struct {
	db       *sql.DB
	metrics  *workerMetrics
	chartDir string
	// classes overrides the class count of every run when > 0.
	classes int

	// seams for tests
	fetchRun     func(ctx context.Context, id int64) (analysisRun, error)
	fetchValues  func(ctx context.Context, run analysisRun) ([]float64, error)
	storeSummary func(ctx context.Context, id int64, m measurement) error
}

func (w *worker) loadRun(ctx context.Context, id int64) (analysisRun, error) {
	if w.fetchRun != nil {
		return w.fetchRun(ctx, id)
	}
	return fetchAnalysisRun(ctx, w.db, id)
}

func (w *worker) loadValues(ctx context.Context, run analysisRun) ([]float64, error) {
	if w.fetchValues != nil {
		return w.fetchValues(ctx, run)
	}
	return fetchSamples(ctx, w.db, run)
}

func (w *worker) store(ctx context.Context, id int64, m measurement) error {
	if w.storeSummary != nil {
		return w.storeSummary(ctx, id, m)
	}
	return saveReport(ctx, w.db, id, m.Summary, m.Duration.Seconds(), m.PeakRSS)
}

// classCount picks the first positive of: worker override, job override,
// the run's class_count. Zero lets stats.Summarize choose.
func (w *worker) classCount(run analysisRun, jobClasses int) int {
	for _, n := range []int{w.classes, jobClasses, run.Classes} {
		if n > 0 {
			return n
		}
	}
	return 0
}

func (w *worker) processAnalysisRun(ctx context.Context, runID int64, jobClasses int) (err error) {
	defer func() {
		if err != nil && w.metrics != nil {
			w.metrics.outcome(outcomeFailed)
		}
	}()

	run, err := w.loadRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("fetch analysis run: %w", err)
	}
	values, err := w.loadValues(ctx, run)
	if err != nil {
		return fmt.Errorf("fetch samples failed: %w", err)
	}
	classes := w.classCount(run, jobClasses)

	m, err := measureSummary(func() (stats.Summary, error) {
		return stats.Summarize(values, classes)
	})
	if err != nil {
		return fmt.Errorf("summarize %d samples: %w", len(values), err)
	}
	if err := w.store(ctx, runID, m); err != nil {
		return fmt.Errorf("store analysis result failed: %w", err)
	}
	if w.metrics != nil {
		w.metrics.observe(m)
	}

	entry := log.WithFields(log.Fields{
		"analysis_run": runID,
		"samples":      m.Summary.Count,
		"classes":      len(m.Summary.Classes),
		"duration":     m.Duration,
		"peak_rss":     m.PeakRSS,
	})
	if w.chartDir != "" {
		path := chartPath(w.chartDir, runID)
		title := fmt.Sprintf("analysis run %d (n=%d)", runID, m.Summary.Count)
		if err := renderHistogram(path, title, m.Summary); err != nil {
			entry.WithError(err).Warn("chart not rendered")
		} else {
			entry = entry.WithField("chart", path)
		}
	}
	entry.Info("processed analysis run")
	return nil
}

// handlePayload decodes one Sidekiq job and processes it. Undecodable
// jobs are counted as rejected and dropped.
func (w *worker) handlePayload(ctx context.Context, payload string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).WithField("payload", payload).Error("job panicked")
			if w.metrics != nil {
				w.metrics.outcome(outcomeFailed)
			}
		}
	}()
	var job sidekiqJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		log.WithError(err).Warn("invalid job json")
		if w.metrics != nil {
			w.metrics.outcome(outcomeRejected)
		}
		return
	}
	if !acceptedJobClasses[job.Class] {
		log.WithField("class", job.Class).Debug("skipping job")
		if w.metrics != nil {
			w.metrics.outcome(outcomeSkipped)
		}
		return
	}
	runID, classes, err := jobArgs(job)
	if err != nil {
		log.WithError(err).WithField("payload", payload).Warn("bad job arguments")
		if w.metrics != nil {
			w.metrics.outcome(outcomeRejected)
		}
		return
	}
	if err := w.processAnalysisRun(ctx, runID, classes); err != nil {
		log.WithError(err).WithField("analysis_run", runID).Error("process error")
	}
}

func (w *worker) runService(ctx context.Context, cfg queueConfig) error {
	logger := log.WithFields(log.Fields{"redis": cfg.Addr, "queue": cfg.Queue})
	logger.Info("waiting for jobs")

	dialer := net.Dialer{Timeout: 5 * time.Second}
	for ctx.Err() == nil {
		conn, err := dialer.DialContext(ctx, "tcp", cfg.Addr)
		if err != nil {
			logger.WithError(err).Warn("redis connect failed; retrying in 2s")
			sleepContext(ctx, 2*time.Second)
			continue
		}
		if err := w.consume(ctx, newQueueConn(conn), cfg); err != nil && !errors.Is(err, io.EOF) {
			logger.WithError(err).Warn("redis connection lost")
		}
		conn.Close()
		sleepContext(ctx, time.Second)
	}
	return ctx.Err()
}

func (w *worker) consume(ctx context.Context, c *queueConn, cfg queueConfig) error {
	if cfg.Password != "" {
		if err := c.send("AUTH", cfg.Password); err != nil {
			return err
		}
		if err := c.expectOK(); err != nil {
			return fmt.Errorf("redis auth failed: %w", err)
		}
	}
	if cfg.DB != 0 {
		if err := c.send("SELECT", strconv.Itoa(cfg.DB)); err != nil {
			return err
		}
		if err := c.expectOK(); err != nil {
			return fmt.Errorf("redis select failed: %w", err)
		}
	}

	for ctx.Err() == nil {
		if err := c.send("BRPOP", cfg.Queue, "5"); err != nil {
			return err
		}
		_, payload, err := c.pop()
		if err != nil {
			return err
		}
		if payload == "" {
			continue // timeout
		}
		w.handlePayload(ctx, payload)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
