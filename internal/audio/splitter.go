package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chaptersplit/internal/chapters"
	"chaptersplit/internal/fileutil"
	"chaptersplit/internal/logging"
	"chaptersplit/internal/services"
)

// ChapterResult reports the outcome for one chapter interval.
type ChapterResult struct {
	Index    int
	Interval chapters.Interval
	Path     string
	Attempts int
	Err      error
}

// OK reports whether the chapter file was produced.
func (r ChapterResult) OK() bool {
	return r.Err == nil
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithWorkers bounds how many chapters are cut concurrently.
func WithWorkers(n int) Option {
	return func(s *Splitter) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithTimeout sets the per-call limit for each extract and transcode.
func WithTimeout(d time.Duration) Option {
	return func(s *Splitter) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithTranscodeRetries sets how many extra transcode attempts follow a timeout.
func WithTranscodeRetries(n int) Option {
	return func(s *Splitter) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// WithExtension sets the chapter file extension.
func WithExtension(ext string) Option {
	return func(s *Splitter) {
		if ext != "" {
			s.extension = ext
		}
	}
}

// WithTempDir sets where intermediate files are created.
func WithTempDir(dir string) Option {
	return func(s *Splitter) {
		s.tempDir = dir
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Splitter) {
		s.logger = logging.NewComponentLogger(logger, "audio")
	}
}

// Splitter cuts a recording into per-chapter files.
type Splitter struct {
	tool      Tool
	workers   int
	timeout   time.Duration
	retries   int
	extension string
	tempDir   string
	logger    *slog.Logger
}

// NewSplitter constructs a Splitter around tool.
func NewSplitter(tool Tool, opts ...Option) *Splitter {
	s := &Splitter{
		tool:      tool,
		workers:   1,
		timeout:   30 * time.Minute,
		retries:   1,
		extension: DefaultExtension,
		logger:    logging.NewComponentLogger(nil, "audio"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split produces one file per interval in outputDir. Results are indexed like
// intervals; a failed chapter never prevents the others from being attempted.
// Cancelling ctx stops chapters that have not started yet.
func (s *Splitter) Split(ctx context.Context, source, outputDir string, intervals []chapters.Interval) []ChapterResult {
	results := make([]ChapterResult, len(intervals))
	if len(intervals) == 0 {
		return results
	}

	workers := min(s.workers, len(intervals))
	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0
	sampler := logging.NewProgressSampler(25)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res := s.splitOne(ctx, source, outputDir, idx, intervals[idx])
				results[idx] = res

				mu.Lock()
				done++
				percent := float64(done) * 100 / float64(len(intervals))
				if sampler.ShouldLog(percent) {
					s.logger.Info("chapter split progress",
						logging.Float64(logging.FieldProgress, percent),
						logging.Int("chapter_count", len(intervals)),
					)
				}
				mu.Unlock()
			}
		}()
	}

	for idx := range intervals {
		if ctx.Err() != nil {
			results[idx] = ChapterResult{
				Index:    idx,
				Interval: intervals[idx],
				Err:      services.Wrap(services.ErrTransient, "audio", "split", "cancelled before start", ctx.Err()),
			}
			continue
		}
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	return results
}

func (s *Splitter) splitOne(ctx context.Context, source, outputDir string, idx int, iv chapters.Interval) ChapterResult {
	ctx = services.WithChapter(ctx, idx)
	logger := logging.WithContext(ctx, s.logger)
	result := ChapterResult{
		Index:    idx,
		Interval: iv,
		Path:     filepath.Join(outputDir, chapters.FileName(idx, iv.Name, s.extension)),
	}
	start := time.Now()

	wav, err := os.CreateTemp(s.tempDir, fmt.Sprintf("chapter-%02d-*.wav", idx))
	if err != nil {
		result.Err = fmt.Errorf("create temp file: %w", err)
		return s.report(logger, result, start)
	}
	wavPath := wav.Name()
	_ = wav.Close()
	defer func() {
		_ = os.Remove(wavPath)
	}()

	err = s.call(ctx, func(callCtx context.Context) error {
		return s.tool.Extract(callCtx, source, iv.StartSeconds(), iv.DurationSeconds(), wavPath)
	})
	if err != nil {
		result.Err = err
		return s.report(logger, result, start)
	}

	encoded := filepath.Join(filepath.Dir(wavPath), fmt.Sprintf(".chapter-%02d-%d.%s", idx, time.Now().UnixNano(), s.extension))
	defer func() {
		_ = os.Remove(encoded)
	}()
	for attempt := 1; ; attempt++ {
		result.Attempts = attempt
		err = s.call(ctx, func(callCtx context.Context) error {
			return s.tool.Transcode(callCtx, wavPath, encoded)
		})
		if err == nil || !errors.Is(err, services.ErrTimeout) || attempt > s.retries || ctx.Err() != nil {
			break
		}
		logging.WarnWithContext(logger, "transcode timed out; retrying", "transcode_retry",
			logging.Int("attempt", attempt),
			logging.Duration("timeout", s.timeout),
			logging.String(logging.FieldErrorHint, "raise audio.timeout_seconds for very long chapters"),
			logging.String(logging.FieldImpact, "chapter encode restarted"),
		)
	}
	if err != nil {
		result.Err = err
		return s.report(logger, result, start)
	}
	if err := fileutil.MoveFile(encoded, result.Path); err != nil {
		result.Err = fmt.Errorf("place chapter file: %w", err)
	}
	return s.report(logger, result, start)
}

// call runs fn under a per-call timeout.
func (s *Splitter) call(ctx context.Context, fn func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(callCtx)
}

func (s *Splitter) report(logger *slog.Logger, result ChapterResult, start time.Time) ChapterResult {
	if result.Err != nil {
		logging.WarnWithContext(logger, "chapter audio failed", "chapter_failed",
			logging.String(logging.FieldChapterName, result.Interval.Name),
			logging.Error(result.Err),
			logging.String(logging.FieldErrorKind, services.Kind(result.Err)),
			logging.String(logging.FieldErrorHint, "check ffmpeg output and source file"),
			logging.String(logging.FieldImpact, "chapter file missing; text artifacts unaffected"),
		)
		return result
	}
	logger.Info("chapter written",
		logging.String(logging.FieldChapterName, result.Interval.Name),
		logging.String("chapter_path", result.Path),
		logging.Int("attempt", result.Attempts),
		logging.Duration("duration", time.Since(start)),
	)
	return result
}
