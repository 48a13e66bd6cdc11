package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"statsworker/stats"
)

// acceptedJobClasses are the Sidekiq worker classes this service runs.
var acceptedJobClasses = map[string]bool{
	"AnalysisWorker":   true,
	"StatisticsWorker": true,
}

// parseInt64 extracts an int64 from a Sidekiq payload argument that may be encoded
// either as a JSON number or as a quoted string.
func parseInt64(raw json.RawMessage) (int64, error) {
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseInt(asString, 10, 64)
	}

	return 0, fmt.Errorf("unsupported arg: %s", string(raw))
}

// jobArgs returns the analysis run id and the optional class count
// override carried by a job: args = [run_id, class_count?].
func jobArgs(job sidekiqJob) (runID int64, classes int, err error) {
	if len(job.Args) == 0 {
		return 0, 0, fmt.Errorf("job %s has no arguments", job.Class)
	}
	runID, err = parseInt64(job.Args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("run id: %w", err)
	}
	if runID <= 0 {
		return 0, 0, fmt.Errorf("run id must be positive, got %d", runID)
	}
	if len(job.Args) > 1 && string(job.Args[1]) != "null" {
		n, err := parseInt64(job.Args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("class count: %w", err)
		}
		if classes, err = boundedClassCount(n); err != nil {
			return 0, 0, err
		}
	}
	return runID, classes, nil
}

// boundedClassCount bounds a class count read from a job, a row or a flag.
// Zero means "use the next source".
func boundedClassCount(n int64) (int, error) {
	if n < 0 || n > stats.MaxClasses {
		return 0, fmt.Errorf("class count must be between 0 and %d, got %d", stats.MaxClasses, n)
	}
	return int(n), nil
}

type queueConfig struct {
	Addr     string
	Password string
	DB       int
	Queue    string
}

func queueConfigFromEnv() (queueConfig, error) {
	return parseQueueConfig(os.Getenv("REDIS_URL"), os.Getenv("WORKER_QUEUE"))
}

func parseQueueConfig(redisURL, queue string) (queueConfig, error) {
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	u, err := url.Parse(redisURL)
	if err != nil {
		return queueConfig{}, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if u.Scheme == "unix" {
		return queueConfig{}, fmt.Errorf("unix sockets not supported by this worker")
	}
	if u.Host == "" {
		return queueConfig{}, fmt.Errorf("REDIS_URL %q has no host", redisURL)
	}
	cfg := queueConfig{Addr: u.Host}
	if u.Port() == "" {
		cfg.Addr += ":6379"
	}
	cfg.Password, _ = u.User.Password()
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		if cfg.DB, err = strconv.Atoi(db); err != nil {
			return queueConfig{}, fmt.Errorf("invalid redis db %q", db)
		}
	}
	if queue == "" {
		queue = "default"
	}
	cfg.Queue = "queue:" + queue
	return cfg, nil
}
