package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"chaptersplit/internal/audio"
	"chaptersplit/internal/chapters"
	"chaptersplit/internal/fileutil"
	"chaptersplit/internal/logging"
	"chaptersplit/internal/services"
	"chaptersplit/internal/transcript"
)

// LockFileName is the advisory lock held inside an output directory while a
// run writes to it.
const LockFileName = ".chaptersplit.lock"

// Artifact kinds.
const (
	KindSubRip   = "srt"
	KindCueSheet = "cue"
	KindMarkdown = "markdown"
	KindRawDump  = "timestamps"
)

// ChapterSplitter cuts per-chapter audio files.
type ChapterSplitter interface {
	Split(ctx context.Context, source, outputDir string, intervals []chapters.Interval) []audio.ChapterResult
}

// Artifact is one text file written for a source recording.
type Artifact struct {
	Kind  string
	Path  string
	Bytes int
}

// Report summarizes what BuildOutputs produced.
type Report struct {
	OutputDir string
	Artifacts []Artifact
	Chapters  []audio.ChapterResult
	// AudioSkipped is set when no splitter is configured.
	AudioSkipped bool
}

// Failed returns the chapter results that did not produce a file.
func (r Report) Failed() []audio.ChapterResult {
	var failed []audio.ChapterResult
	for _, res := range r.Chapters {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Coordinator writes the artifact set for a source recording.
type Coordinator struct {
	outputRoot string
	splitter   ChapterSplitter
	logger     *slog.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithSplitter enables per-chapter audio output.
func WithSplitter(splitter ChapterSplitter) CoordinatorOption {
	return func(c *Coordinator) {
		c.splitter = splitter
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logging.NewComponentLogger(logger, "export")
	}
}

// NewCoordinator returns a Coordinator writing under outputRoot.
func NewCoordinator(outputRoot string, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		outputRoot: outputRoot,
		logger:     logging.NewComponentLogger(nil, "export"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OutputDir returns the directory BuildOutputs uses for sourceFile.
func (c *Coordinator) OutputDir(sourceFile string) string {
	return filepath.Join(c.outputRoot, baseName(sourceFile))
}

// BuildOutputs writes every artifact for sourceFile from a single snapshot of
// intervals and segments. Text artifacts are written first; any failure there
// aborts. Chapter audio failures are reported in the Report, not returned.
func (c *Coordinator) BuildOutputs(ctx context.Context, sourceFile string, intervals []chapters.Interval, segments []transcript.Segment) (Report, error) {
	if len(intervals) == 0 {
		return Report{}, services.Wrap(services.ErrInput, "export", "build outputs", "no chapter intervals", nil)
	}
	dir := c.OutputDir(sourceFile)
	report := Report{OutputDir: dir}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return report, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return report, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return report, services.Wrap(services.ErrTransient, "export", "lock",
			fmt.Sprintf("output directory %s is in use by another run", dir), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger.Warn("failed to release output lock",
				logging.String(logging.FieldEventType, "output_unlock_failed"),
				logging.String(logging.FieldErrorHint, "remove the lock file if no run is active"),
				logging.String(logging.FieldImpact, "later runs may report the directory as busy"),
				logging.Error(err),
			)
		}
	}()

	// Snapshot so the splitter and emitters cannot observe caller mutations.
	intervals = append([]chapters.Interval(nil), intervals...)
	segments = append([]transcript.Segment(nil), segments...)

	name := baseName(sourceFile)
	plan := []struct {
		kind string
		file string
		body string
	}{
		{KindSubRip, name + ".srt", SubRip(segments)},
		{KindCueSheet, name + ".cue", CueSheet(filepath.Base(sourceFile), intervals)},
		{KindMarkdown, name + ".md", Markdown(intervals, segments)},
		{KindRawDump, name + "_timestamps.txt", RawDump(segments)},
	}
	for _, item := range plan {
		path := filepath.Join(dir, item.file)
		if err := fileutil.WriteFileAtomic(path, []byte(item.body), 0o644); err != nil {
			return report, services.Wrap(services.ErrTransient, "export", "write "+item.kind, path, err)
		}
		report.Artifacts = append(report.Artifacts, Artifact{Kind: item.kind, Path: path, Bytes: len(item.body)})
		c.logger.Debug("artifact written",
			logging.String("artifact_kind", item.kind),
			logging.String("artifact_path", path),
		)
	}
	c.logger.Info("text artifacts written",
		logging.String("output_dir", dir),
		logging.Int("chapter_count", len(intervals)),
		logging.Int("segment_count", len(segments)),
	)

	if c.splitter == nil {
		report.AudioSkipped = true
		return report, nil
	}
	start := time.Now()
	report.Chapters = c.splitter.Split(ctx, sourceFile, dir, intervals)
	failed := report.Failed()
	if len(failed) > 0 {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "some chapter files were not produced", "chapter_audio_incomplete",
			logging.Int("failed_chapters", len(failed)),
			logging.Int("chapter_count", len(intervals)),
			logging.String(logging.FieldErrorHint, "rerun the split; text artifacts are already complete"),
			logging.String(logging.FieldImpact, "missing chapter audio files"),
			logging.Alert("chapter_audio"),
		)
	} else {
		c.logger.Info("chapter audio written",
			logging.Int("chapter_count", len(report.Chapters)),
			logging.Duration("elapsed", time.Since(start)),
		)
	}
	return report, nil
}

func baseName(sourceFile string) string {
	base := filepath.Base(sourceFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
