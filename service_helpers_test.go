package main

import (
	"encoding/json"
	"math"
	"testing"

	"statsworker/stats"
)

func TestParseInt64Numeric(t *testing.T) {
	v, err := parseInt64(json.RawMessage("12345"))
	if err != nil {
		t.Fatalf("parseInt64 error: %v", err)
	}
	if v != 12345 {
		t.Fatalf("expected 12345, got %d", v)
	}
}

func TestParseInt64String(t *testing.T) {
	v, err := parseInt64(json.RawMessage(`"67890"`))
	if err != nil {
		t.Fatalf("parseInt64 error: %v", err)
	}
	if v != 67890 {
		t.Fatalf("expected 67890, got %d", v)
	}
}

func TestParseInt64Invalid(t *testing.T) {
	for _, raw := range []string{`{"oops":1}`, `""`, `"12a"`} {
		if _, err := parseInt64(json.RawMessage(raw)); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestJobArgs(t *testing.T) {
	var job sidekiqJob
	if err := json.Unmarshal([]byte(`{"class":"AnalysisWorker","args":["42",16]}`), &job); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	id, classes, err := jobArgs(job)
	if err != nil {
		t.Fatalf("jobArgs error: %v", err)
	}
	if id != 42 || classes != 16 {
		t.Fatalf("expected 42/16, got %d/%d", id, classes)
	}

	job.Args = job.Args[:1]
	if _, classes, _ = jobArgs(job); classes != 0 {
		t.Fatalf("expected no class override, got %d", classes)
	}
}

func TestJobArgsInvalid(t *testing.T) {
	for _, payload := range []string{
		`{"class":"AnalysisWorker","args":[]}`,
		`{"class":"AnalysisWorker","args":[0]}`,
		`{"class":"AnalysisWorker","args":[7,"many"]}`,
		`{"class":"AnalysisWorker","args":[7,"9000000000000000000"]}`,
		`{"class":"AnalysisWorker","args":[7,-3]}`,
		`{"class":"AnalysisWorker","args":[7,10001]}`,
	} {
		var job sidekiqJob
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if _, _, err := jobArgs(job); err == nil {
			t.Fatalf("expected error for %s", payload)
		}
	}
}

func TestParseQueueConfig(t *testing.T) {
	cfg, err := parseQueueConfig("redis://:hunter2@cache.internal:6380/3", "stats")
	if err != nil {
		t.Fatalf("parseQueueConfig error: %v", err)
	}
	want := queueConfig{Addr: "cache.internal:6380", Password: "hunter2", DB: 3, Queue: "queue:stats"}
	if cfg != want {
		t.Fatalf("unexpected config %#v", cfg)
	}

	cfg, err = parseQueueConfig("", "")
	if err != nil {
		t.Fatalf("parseQueueConfig error: %v", err)
	}
	if cfg.Addr != "localhost:6379" || cfg.DB != 0 || cfg.Queue != "queue:default" {
		t.Fatalf("unexpected default config %#v", cfg)
	}

	cfg, err = parseQueueConfig("redis://cache.internal", "")
	if err != nil || cfg.Addr != "cache.internal:6379" {
		t.Fatalf("expected default port, got %#v (%v)", cfg, err)
	}
}

func TestParseQueueConfigInvalid(t *testing.T) {
	for _, raw := range []string{"unix:///tmp/redis.sock", "redis://cache/abc", "://bad"} {
		if _, err := parseQueueConfig(raw, ""); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestBoundedClassCount(t *testing.T) {
	for _, n := range []int64{0, 1, stats.MaxClasses} {
		got, err := boundedClassCount(n)
		if err != nil || int64(got) != n {
			t.Fatalf("expected %d, got %d (%v)", n, got, err)
		}
	}
	for _, n := range []int64{-1, stats.MaxClasses + 1, math.MaxInt64} {
		if _, err := boundedClassCount(n); err == nil {
			t.Fatalf("expected error for %d", n)
		}
	}
}
