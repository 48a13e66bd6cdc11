package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Local development reads .env files; real env vars take precedence.
	_ = godotenv.Load("../statistics_ui/.env")
	_ = godotenv.Load(".env")

	if err := configureLogging(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")); err != nil {
		log.Fatalf("logging config error: %v", err)
	}

	var runID int64
	var service bool
	var classes int
	flag.Int64Var(&runID, "analysis-run-id", 0, "ID of the analysis_runs row to process (omit to run service)")
	flag.BoolVar(&service, "service", false, "Run as background service listening to the Sidekiq queue")
	flag.IntVar(&classes, "classes", 0, "Number of histogram classes (0 uses the run's class_count or the default)")
	flag.Parse()
	if _, err := boundedClassCount(int64(classes)); err != nil {
		log.Fatalf("invalid --classes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn, err := postgresConfigFromEnv().dsn()
	if err != nil {
		log.Fatalf("database config error: %v", err)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect error: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("database not reachable: %v", err)
	}

	reg := prometheus.NewRegistry()
	w := &worker{
		db:       db,
		metrics:  newWorkerMetrics(reg),
		chartDir: os.Getenv("CHART_DIR"),
		classes:  classes,
	}
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		go func() {
			if err := serveMetrics(ctx, addr, reg); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	if runID == 0 && flag.NArg() > 0 {
		if _, err := fmt.Sscan(flag.Arg(0), &runID); err != nil {
			log.Fatalf("invalid analysis run id %q", flag.Arg(0))
		}
	}
	if service || runID == 0 {
		cfg, err := queueConfigFromEnv()
		if err != nil {
			log.Fatalf("queue config error: %v", err)
		}
		if err := w.runService(ctx, cfg); err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
		return
	}

	if err := w.processAnalysisRun(ctx, runID, 0); err != nil {
		log.Fatal(err)
	}
}
