package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/wptransfer"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wptransfer.RunService = (*RunService)(nil)

// RunService implements wptransfer.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run and its per-post results in one transaction.
func (s *RunService) CreateRun(ctx context.Context, run *wptransfer.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	run.Tally()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, output_dir, total, succeeded, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, run.SourceURL, run.OutputDir, run.Total, run.Successful, run.Failures,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, r := range run.Results {
		var msg string
		if r.Err != nil {
			msg = r.Err.Error()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_results (run_id, position, slug, title, date, category, image_path, output_path, content_hash, bytes, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, i, r.Slug, r.Title, r.Date, string(r.Category), r.ImagePath, r.OutputPath, r.ContentHash, r.Bytes, msg)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	run.ID = id
	return nil
}

// FindRunByID retrieves a run with its results in processing order.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*wptransfer.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, source_url, output_dir, total, succeeded, failed, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, wptransfer.Errorf(wptransfer.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, title, date, category, image_path, output_path, content_hash, bytes, error
		FROM run_results
		WHERE run_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r wptransfer.RenderResult
		var category, msg string
		if err := rows.Scan(&r.Slug, &r.Title, &r.Date, &category, &r.ImagePath, &r.OutputPath,
			&r.ContentHash, &r.Bytes, &msg); err != nil {
			return nil, err
		}
		r.Category = wptransfer.Category(category)
		if msg != "" {
			r.Err = errors.New(msg)
		}
		run.Results = append(run.Results, r)
	}

	return run, rows.Err()
}

// FindRuns retrieves runs, most recent first, without their results.
func (s *RunService) FindRuns(ctx context.Context, filter wptransfer.RunFilter) ([]*wptransfer.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_url, output_dir, total, succeeded, failed, started_at, finished_at
		FROM runs ORDER BY started_at DESC, rowid DESC`)
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*wptransfer.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*wptransfer.Run, error) {
	var run wptransfer.Run
	var startedAt, finishedAt string
	if err := row.Scan(&run.ID, &run.SourceURL, &run.OutputDir, &run.Total,
		&run.Successful, &run.Failures, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
