package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeStore struct {
	runs   map[int64]analysisRun
	values map[int64][]float64
	saved  map[int64]measurement
}

func newTestWorker(t *testing.T) (*worker, *fakeStore) {
	t.Helper()
	rssBytesFunc = func() float64 { return 1 << 20 }
	t.Cleanup(func() { rssBytesFunc = rssBytes })

	fs := &fakeStore{
		runs: map[int64]analysisRun{
			7: {ID: 7, DatasetID: 1, Classes: 6},
			8: {ID: 8, DatasetID: 2},
		},
		values: map[int64][]float64{
			1: {9, 12, 14, 12, 12, 13, 10, 11, 12, 15},
			2: {},
		},
		saved: map[int64]measurement{},
	}
	w := &worker{
		metrics: newWorkerMetrics(prometheus.NewRegistry()),
		fetchRun: func(_ context.Context, id int64) (analysisRun, error) {
			run, ok := fs.runs[id]
			if !ok {
				return analysisRun{}, fmt.Errorf("%w: id %d", errRunNotFound, id)
			}
			return run, nil
		},
		fetchValues: func(_ context.Context, run analysisRun) ([]float64, error) {
			return fs.values[run.DatasetID], nil
		},
		storeSummary: func(_ context.Context, id int64, m measurement) error {
			fs.saved[id] = m
			return nil
		},
	}
	return w, fs
}

func TestProcessAnalysisRun(t *testing.T) {
	w, fs := newTestWorker(t)

	if err := w.processAnalysisRun(context.Background(), 7, 0); err != nil {
		t.Fatalf("processAnalysisRun error: %v", err)
	}
	m, ok := fs.saved[7]
	if !ok {
		t.Fatalf("expected result for run 7 to be stored")
	}
	if m.Summary.Count != 10 || m.Summary.Mean != 12 || m.Summary.Median != 12 {
		t.Fatalf("unexpected summary: %#v", m.Summary)
	}
	if len(m.Summary.Classes) != 6 {
		t.Fatalf("expected the run's 6 classes, got %d", len(m.Summary.Classes))
	}
	if m.PeakRSS != 1<<20 {
		t.Fatalf("expected peak rss %d, got %v", 1<<20, m.PeakRSS)
	}
	if got := testutil.ToFloat64(w.metrics.runs.WithLabelValues(outcomeProcessed)); got != 1 {
		t.Fatalf("expected 1 processed run, got %v", got)
	}
}

func TestProcessAnalysisRunFailures(t *testing.T) {
	w, fs := newTestWorker(t)

	if err := w.processAnalysisRun(context.Background(), 99, 0); !errors.Is(err, errRunNotFound) {
		t.Fatalf("expected errRunNotFound, got %v", err)
	}
	if err := w.processAnalysisRun(context.Background(), 8, 0); err == nil {
		t.Fatalf("expected error for a run without samples")
	}
	if len(fs.saved) != 0 {
		t.Fatalf("expected nothing stored, got %v", fs.saved)
	}
	if got := testutil.ToFloat64(w.metrics.runs.WithLabelValues(outcomeFailed)); got != 2 {
		t.Fatalf("expected 2 failed runs, got %v", got)
	}
}

func TestClassCountPrecedence(t *testing.T) {
	w := &worker{}
	run := analysisRun{Classes: 12}
	if got := w.classCount(run, 0); got != 12 {
		t.Fatalf("expected run class count 12, got %d", got)
	}
	if got := w.classCount(run, 9); got != 9 {
		t.Fatalf("expected job class count 9, got %d", got)
	}
	w.classes = 20
	if got := w.classCount(run, 9); got != 20 {
		t.Fatalf("expected worker override 20, got %d", got)
	}
	if got := (&worker{}).classCount(analysisRun{}, 0); got != 0 {
		t.Fatalf("expected 0 to select the default, got %d", got)
	}
}

func TestConsumeProcessesJobs(t *testing.T) {
	w, fs := newTestWorker(t)

	job := `{"class":"AnalysisWorker","args":[7, 4]}`
	other := `{"class":"MailerWorker","args":[1]}`
	replies := "+OK\r\n+OK\r\n" +
		"*-1\r\n" +
		bulkPair("queue:stats", other) +
		bulkPair("queue:stats", job)
	f, c := newFakeConn(replies)

	cfg := queueConfig{Password: "pw", DB: 2, Queue: "queue:stats"}
	if err := w.consume(context.Background(), c, cfg); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF once replies run out, got %v", err)
	}

	sent := f.Buffer.String()
	for _, cmd := range []string{"AUTH", "SELECT", "BRPOP"} {
		if !strings.Contains(sent, cmd) {
			t.Fatalf("expected %s to be sent, got %q", cmd, sent)
		}
	}
	m, ok := fs.saved[7]
	if !ok {
		t.Fatalf("expected run 7 to be processed")
	}
	if len(m.Summary.Classes) != 4 {
		t.Fatalf("expected job class override of 4, got %d", len(m.Summary.Classes))
	}
	if got := testutil.ToFloat64(w.metrics.runs.WithLabelValues(outcomeSkipped)); got != 1 {
		t.Fatalf("expected 1 skipped job, got %v", got)
	}
}

func TestConsumeAuthFailure(t *testing.T) {
	w, _ := newTestWorker(t)
	_, c := newFakeConn("-ERR invalid password\r\n")
	if err := w.consume(context.Background(), c, queueConfig{Password: "nope", Queue: "queue:x"}); err == nil {
		t.Fatalf("expected auth error")
	}
}

func bulkPair(key, payload string) string {
	return fmt.Sprintf("*2\r\n$%d\r\n%s\r\n$%d\r\n%s\r\n", len(key), key, len(payload), payload)
}

func TestHandlePayloadRejects(t *testing.T) {
	w, fs := newTestWorker(t)
	for _, payload := range []string{
		`{"class":"AnalysisWorker","args":[7,"9000000000000000000"]}`,
		`{"class":"AnalysisWorker","args":[]}`,
		`not json`,
	} {
		w.handlePayload(context.Background(), payload)
	}
	if len(fs.saved) != 0 {
		t.Fatalf("expected nothing stored, got %d runs", len(fs.saved))
	}
	if got := testutil.ToFloat64(w.metrics.runs.WithLabelValues(outcomeRejected)); got != 3 {
		t.Fatalf("expected 3 rejected jobs, got %v", got)
	}
}

func TestHandlePayloadRecoversPanic(t *testing.T) {
	w, fs := newTestWorker(t)
	w.fetchValues = func(context.Context, analysisRun) ([]float64, error) {
		panic("boom")
	}
	w.handlePayload(context.Background(), `{"class":"AnalysisWorker","args":[7]}`)
	if len(fs.saved) != 0 {
		t.Fatalf("expected nothing stored, got %d runs", len(fs.saved))
	}
	if got := testutil.ToFloat64(w.metrics.runs.WithLabelValues(outcomeFailed)); got != 1 {
		t.Fatalf("expected 1 failed job, got %v", got)
	}
}
