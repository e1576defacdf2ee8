package resultlog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"minnow/internal/common/config"

	_ "github.com/lib/pq"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresRecorder appends run records to a table:
//
//	CREATE TABLE processor_runs (
//	    run_id uuid PRIMARY KEY, task_type text, input_dir text, output_dir text,
//	    input_type text, output_type text, input_digest text, output_digest text,
//	    status text, error_code text, error text,
//	    started_at timestamptz, finished_at timestamptz, duration_ms bigint
//	);
type PostgresRecorder struct {
	db    *sql.DB
	table string
}

// NewPostgres opens the database configured for the result log
func NewPostgres(cfg config.PostgresConfig) (*PostgresRecorder, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return NewPostgresRecorder(db, cfg.Table)
}

func NewPostgresRecorder(db *sql.DB, table string) (*PostgresRecorder, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid result log table name %q", table)
	}
	return &PostgresRecorder{db: db, table: table}, nil
}

func (r *PostgresRecorder) Record(ctx context.Context, record Record) error {
	query := fmt.Sprintf(`INSERT INTO %s (
		run_id, task_type, input_dir, output_dir, input_type, output_type,
		input_digest, output_digest, status, error_code, error,
		started_at, finished_at, duration_ms
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		record.RunID, record.TaskType, record.InputDir, record.OutputDir,
		record.InputType, record.OutputType, record.InputDigest, record.OutputDigest,
		record.Status, record.ErrorCode, record.Error,
		record.StartedAt, record.FinishedAt, record.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}

// Ping checks the connection
func (r *PostgresRecorder) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection
func (r *PostgresRecorder) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
