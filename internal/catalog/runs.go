package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// Run summarizes one completed split.
type Run struct {
	ID               string
	SourcePath       string
	OutputDir        string
	StartedAt        time.Time
	FinishedAt       time.Time
	SegmentCount     int
	ChapterCount     int
	FailedChapters   int
	TranscriptReused bool
	AudioSkipped     bool
	Chapters         []Chapter
}

// Duration returns the wall time spent on the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Chapter is one recorded chapter interval.
type Chapter struct {
	Index     int
	Name      string
	StartMs   int64
	EndMs     int64
	AudioPath string
	Error     string
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// RecordRun stores run and its chapters in one transaction. A blank ID is
// replaced with a new UUID; the stored run is returned.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if strings.TrimSpace(run.SourcePath) == "" {
		return run, errors.New("record run: source path required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}
	if run.ChapterCount == 0 {
		run.ChapterCount = len(run.Chapters)
	}

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `INSERT INTO runs (
			id, source_path, output_dir, started_at, finished_at,
			segment_count, chapter_count, failed_chapters, transcript_reused, audio_skipped
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.SourcePath, run.OutputDir,
			run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
			run.SegmentCount, run.ChapterCount, run.FailedChapters,
			boolToInt(run.TranscriptReused), boolToInt(run.AudioSkipped),
		); err != nil {
			return err
		}
		for _, ch := range run.Chapters {
			if _, err := tx.ExecContext(ctx, `INSERT INTO chapters (
				run_id, chapter_index, name, start_ms, end_ms, audio_path, error
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				run.ID, ch.Index, ch.Name, ch.StartMs, ch.EndMs, ch.AudioPath, ch.Error,
			); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return run, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first, without chapters. A limit of
// zero or less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, source_path, output_dir, started_at, finished_at,
		segment_count, chapter_count, failed_chapters, transcript_reused, audio_skipped
		FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a run with its chapters.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, source_path, output_dir, started_at, finished_at,
		segment_count, chapter_count, failed_chapters, transcript_reused, audio_skipped
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}
	run.Chapters, err = s.Chapters(ctx, id)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// Chapters returns the chapters recorded for runID in index order.
func (s *Store) Chapters(ctx context.Context, runID string) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT chapter_index, name, start_ms, end_ms, audio_path, error
		FROM chapters WHERE run_id = ? ORDER BY chapter_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []Chapter
	for rows.Next() {
		var ch Chapter
		if err := rows.Scan(&ch.Index, &ch.Name, &ch.StartMs, &ch.EndMs, &ch.AudioPath, &ch.Error); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return chapters, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run                  Run
		started, finished    string
		reused, audioSkipped int
	)
	if err := row.Scan(
		&run.ID, &run.SourcePath, &run.OutputDir, &started, &finished,
		&run.SegmentCount, &run.ChapterCount, &run.FailedChapters, &reused, &audioSkipped,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	run.TranscriptReused = reused != 0
	run.AudioSkipped = audioSkipped != 0
	return run, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
