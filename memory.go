package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"statsworker/stats"
)

const samplingInterval = 10 * time.Millisecond

var rssBytesFunc = rssBytes

// measurement is the outcome of one summary computation.
type measurement struct {
	Summary  stats.Summary
	Duration time.Duration
	PeakRSS  float64
}

// measureSummary runs fn while sampling resident memory and reports the
// peak seen, never less than the baseline before fn started.
func measureSummary(fn func() (stats.Summary, error)) (measurement, error) {
	baseline := rssBytesFunc()
	var mu sync.Mutex
	peak := baseline

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(samplingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				current := rssBytesFunc()
				mu.Lock()
				if current > peak {
					peak = current
				}
				mu.Unlock()
			case <-stop:
				return
			}
		}
	}()

	start := time.Now()
	summary, err := fn()
	elapsed := time.Since(start)
	close(stop)
	wg.Wait()

	if err != nil {
		return measurement{}, err
	}
	return measurement{Summary: summary, Duration: elapsed, PeakRSS: peak}, nil
}

func rssBytes() float64 {
	if runtime.GOOS == "linux" {
		if data, err := os.ReadFile("/proc/self/statm"); err == nil {
			if v := parseStatm(data, os.Getpagesize()); v > 0 {
				return v
			}
		}
		if f, err := os.Open("/proc/self/status"); err == nil {
			defer f.Close()
			if v := parseStatusRSS(f); v > 0 {
				return v
			}
		}
	}
	return rssFromPS()
}

// parseStatm reads the resident page count, the second field of
// /proc/self/statm.
func parseStatm(data []byte, pageSize int) float64 {
	fields := bytes.Fields(data)
	if len(fields) < 2 {
		return 0
	}
	pages, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return float64(pages * uint64(pageSize))
}

// parseStatusRSS reads the VmRSS line (in kB) of /proc/self/status.
func parseStatusRSS(r io.Reader) float64 {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		return parseKB(strings.Fields(line)[1:])
	}
	return 0
}

func rssFromPS() float64 {
	output, err := exec.Command("ps", "-o", "rss=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		return 0
	}
	return parseKB(strings.Fields(string(output)))
}

func parseKB(fields []string) float64 {
	if len(fields) == 0 {
		return 0
	}
	kb, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0
	}
	return float64(kb * 1024)
}
