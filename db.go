package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/lib/pq"

	"statsworker/stats"
)

var errRunNotFound = errors.New("analysis run not found")

type postgresConfig struct {
	Host, Port, User, Password, Database string
	URL                                  string
}

func postgresConfigFromEnv() postgresConfig {
	return postgresConfig{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Database: os.Getenv("POSTGRES_DB"),
		URL:      os.Getenv("DATABASE_URL"),
	}
}

// dsn prefers the discrete POSTGRES_* settings and falls back to DATABASE_URL.
func (c postgresConfig) dsn() (string, error) {
	if c.Database == "" {
		if c.URL != "" {
			return c.URL, nil
		}
		return "", errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")
	}
	host, port := c.Host, c.Port
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, c.User, c.Password, c.Database), nil
}

type analysisRun struct {
	ID        int64
	DatasetID int64
	Classes   int
	Page      int
	PerPage   int
}

func fetchAnalysisRun(ctx context.Context, db *sql.DB, id int64) (analysisRun, error) {
	const q = `
SELECT dataset_id, class_count, page, per_page
FROM analysis_runs
WHERE id = $1`

	var classes, page, perPage sql.NullInt64
	run := analysisRun{ID: id}
	err := db.QueryRowContext(ctx, q, id).Scan(&run.DatasetID, &classes, &page, &perPage)
	if errors.Is(err, sql.ErrNoRows) {
		return analysisRun{}, fmt.Errorf("%w: id %d", errRunNotFound, id)
	}
	if err != nil {
		return analysisRun{}, err
	}
	if run.Classes, err = boundedClassCount(classes.Int64); err != nil {
		return analysisRun{}, fmt.Errorf("analysis run %d: %w", id, err)
	}
	run.Page = normalizePositiveInt(page.Int64, 1)
	// zero per_page reads the whole dataset
	run.PerPage = int(perPage.Int64)
	return run, nil
}

func fetchSamples(ctx context.Context, db *sql.DB, run analysisRun) ([]float64, error) {
	q := "SELECT value FROM samples WHERE dataset_id = $1 ORDER BY id ASC"
	args := []interface{}{run.DatasetID}
	if run.PerPage > 0 {
		limit, offset := windowLimitOffset(run.Page, run.PerPage)
		q += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var values []float64
	for rows.Next() {
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			values = append(values, v.Float64)
		}
	}
	return values, rows.Err()
}

func windowLimitOffset(page, perPage int) (limit, offset int) {
	pp := normalizePositiveInt(int64(perPage), 1)
	pg := normalizePositiveInt(int64(page), 1)
	return pp, (pg - 1) * pp
}

func normalizePositiveInt(value int64, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return int(value)
}

var classColumns = []string{"analysis_run_id", "position", "boundary", "frequency", "cumulative_frequency", "density"}

func classRows(runID int64, classes []stats.Class) [][]interface{} {
	rows := make([][]interface{}, len(classes))
	for i, c := range classes {
		rows[i] = []interface{}{runID, i, c.Boundary, c.Frequency, c.Cumulative, c.Density}
	}
	return rows
}

// saveReport stores the summary row and its class table in one transaction.
func saveReport(ctx context.Context, db *sql.DB, runID int64, s stats.Summary, durationSeconds, memoryBytes float64) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const q = `
INSERT INTO analysis_results
  (analysis_run_id, count, mean, median, mode, min, max, range, q1_end, q3_end,
   variance_population, variance_sample, standard_deviation_population, standard_deviation_sample,
   class_width, trend_slope, trend_intercept, duration, memory, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,NOW(),NOW())
`
	if _, err = tx.ExecContext(ctx, q,
		runID, s.Count, s.Mean, s.Median, s.Mode, s.Min, s.Max, s.Range, s.Q1, s.Q3,
		s.VariancePopulation, s.VarianceSample, s.StdDevPopulation, s.StdDevSample,
		s.ClassWidth, s.Trend.Slope, s.Trend.Intercept, durationSeconds, memoryBytes,
	); err != nil {
		return fmt.Errorf("insert analysis_results: %w", err)
	}

	if rows := classRows(runID, s.Classes); len(rows) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx, pq.CopyIn("analysis_classes", classColumns...))
		if err != nil {
			return fmt.Errorf("prepare analysis_classes copy: %w", err)
		}
		for _, r := range rows {
			if _, err = stmt.ExecContext(ctx, r...); err != nil {
				stmt.Close()
				return fmt.Errorf("copy analysis_classes: %w", err)
			}
		}
		if _, err = stmt.ExecContext(ctx); err != nil {
			stmt.Close()
			return fmt.Errorf("flush analysis_classes: %w", err)
		}
		if err = stmt.Close(); err != nil {
			return err
		}
	}
	return tx.Commit()
}
