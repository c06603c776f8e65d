package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"chaptersplit/internal/audio"
	"chaptersplit/internal/catalog"
	"chaptersplit/internal/chapters"
	"chaptersplit/internal/config"
	"chaptersplit/internal/exclusions"
	"chaptersplit/internal/export"
	"chaptersplit/internal/fileutil"
	"chaptersplit/internal/logging"
	"chaptersplit/internal/media/ffprobe"
	"chaptersplit/internal/media/tags"
	"chaptersplit/internal/services"
	"chaptersplit/internal/services/whisperx"
	"chaptersplit/internal/textutil"
	"chaptersplit/internal/timecode"
	"chaptersplit/internal/transcript"
)

// durationTolerance absorbs encoder padding when comparing the transcript end
// with the probed recording length.
const durationTolerance = 2 * time.Second

// Transcriber turns a recording into ordered transcript segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, workDir string) ([]transcript.Segment, error)
}

// Prober inspects a recording.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// TagReader reads metadata embedded in a recording.
type TagReader interface {
	Read(ctx context.Context, path string) (tags.Info, error)
}

// Exporter writes the artifact set for a recording.
type Exporter interface {
	BuildOutputs(ctx context.Context, sourceFile string, intervals []chapters.Interval, segments []transcript.Segment) (export.Report, error)
}

// Recorder stores completed runs.
type Recorder interface {
	RecordRun(ctx context.Context, run catalog.Run) (catalog.Run, error)
}

// Plan is the chapter timeline derived for a recording, before any artifact
// is written.
type Plan struct {
	Source           string
	// Title is the display name derived from the source file name.
	Title            string
	TranscriptPath   string
	TranscriptReused bool
	Segments         []transcript.Segment
	Intervals        []chapters.Interval
	// DurationMs is the probed recording length, or zero when unknown.
	DurationMs int64
	// EmbeddedChapters counts chapter markers already present in the file.
	// They are reported, never used for the timeline.
	EmbeddedChapters int
	Warnings         []string
}

// Result describes a completed run.
type Result struct {
	Plan
	RunID  string
	Report export.Report
	// Recorded is false when the catalog is disabled or recording failed.
	Recorded bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTranscriber replaces the WhisperX transcriber.
func WithTranscriber(t Transcriber) Option {
	return func(r *Runner) { r.transcriber = t }
}

// WithProber replaces the ffprobe inspector. A nil prober skips inspection.
func WithProber(p Prober) Option {
	return func(r *Runner) { r.prober = p }
}

// WithTagReader replaces the embedded metadata reader. A nil reader skips it.
func WithTagReader(t TagReader) Option {
	return func(r *Runner) { r.tagReader = t }
}

// WithExporter replaces the export coordinator.
func WithExporter(e Exporter) Option {
	return func(r *Runner) { r.exporter = e }
}

// WithRecorder enables run recording.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.base = logger
		r.logger = logging.NewComponentLogger(logger, "pipeline")
	}
}

// Runner executes the split pipeline for one recording at a time.
type Runner struct {
	cfg         *config.Config
	transcriber Transcriber
	prober      Prober
	tagReader   TagReader
	exporter    Exporter
	recorder    Recorder
	base        *slog.Logger
	logger      *slog.Logger
	now         func() time.Time
}

// NewRunner wires the default collaborators from cfg; options override them.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:       cfg,
		prober:    ffprobe.NewProber(cfg.FFprobeBinary()),
		tagReader: tags.NewReader(),
		logger:    logging.NewComponentLogger(nil, "pipeline"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.transcriber == nil {
		svc := whisperx.NewService(whisperx.Config{
			Model:       cfg.Transcription.Model,
			Threads:     cfg.Transcription.Threads,
			Language:    cfg.Transcription.Language,
			CUDAEnabled: cfg.Transcription.CUDAEnabled,
			VADMethod:   cfg.Transcription.VADMethod,
			HFToken:     cfg.Transcription.HFToken,
		}, cfg.FFmpegBinary(), cfg.UVXBinary())
		svc.WithLogger(r.base)
		r.transcriber = svc
	}
	if r.exporter == nil {
		r.exporter = NewExporter(cfg, r.base)
	}
	return r
}

// NewExporter builds the export coordinator described by cfg, with the audio
// splitter attached when audio output is enabled.
func NewExporter(cfg *config.Config, logger *slog.Logger) *export.Coordinator {
	opts := []export.CoordinatorOption{export.WithLogger(logger)}
	if cfg.Audio.Enabled {
		tool := audio.NewFFmpeg(cfg.FFmpegBinary(), audio.Encoding{
			Codec:   cfg.Audio.Codec,
			Bitrate: cfg.Audio.Bitrate,
		})
		splitter := audio.NewSplitter(tool,
			audio.WithWorkers(cfg.Audio.Workers),
			audio.WithTimeout(time.Duration(cfg.Audio.TimeoutSeconds)*time.Second),
			audio.WithTranscodeRetries(cfg.Audio.TranscodeRetries),
			audio.WithExtension(cfg.Audio.Extension),
			audio.WithTempDir(cfg.WorkDir()),
			audio.WithLogger(logger),
		)
		opts = append(opts, export.WithSplitter(splitter))
	}
	return export.NewCoordinator(cfg.Paths.OutputDir, opts...)
}

// Plan resolves source and derives its chapter timeline without writing any
// artifact. A missing transcript is produced and cached beside the source.
func (r *Runner) Plan(ctx context.Context, source string) (Plan, error) {
	var plan Plan
	resolved, err := ResolveInput(source, r.cfg.Paths.InputDir)
	if err != nil {
		return plan, err
	}
	plan.Source = resolved
	plan.Title = textutil.TitleFromPath(resolved)
	plan.TranscriptPath = TranscriptPath(resolved)
	ctx = services.WithSource(ctx, resolved)
	logger := logging.WithContext(ctx, r.logger)

	phrases, err := exclusions.LoadPhrases(r.cfg.Chapters.ExclusionsPath, r.cfg.Chapters.Language)
	if err != nil {
		return plan, err
	}
	matcher, err := chapters.NewMatcher(r.cfg.Chapters.Keyword, phrases)
	if err != nil {
		return plan, services.Wrap(services.ErrConfiguration, "plan", "heading pattern", r.cfg.Chapters.Keyword, err)
	}

	if r.prober != nil {
		r.probe(services.WithStage(ctx, "probe"), &plan)
	}
	if r.tagReader != nil {
		r.readTags(services.WithStage(ctx, "probe"), &plan)
	}

	segments, reused, err := r.loadTranscript(services.WithStage(ctx, "transcribe"), plan.TranscriptPath, resolved)
	if err != nil {
		return plan, err
	}
	if err := transcript.Validate(segments); err != nil {
		return plan, fmt.Errorf("%s: %w", plan.TranscriptPath, err)
	}
	plan.Segments = segments
	plan.TranscriptReused = reused

	end := transcript.End(segments)
	if plan.DurationMs > 0 && time.Duration(end-plan.DurationMs)*time.Millisecond > durationTolerance {
		msg := fmt.Sprintf("transcript ends at %s but recording is %s long",
			timecode.MillisToTimecode(end), timecode.MillisToTimecode(plan.DurationMs))
		plan.Warnings = append(plan.Warnings, msg)
		logging.WarnWithContext(logger, "transcript longer than recording", "transcript_duration_mismatch",
			logging.String("transcript_end", timecode.MillisToTimecode(end)),
			logging.String("recording_duration", timecode.MillisToTimecode(plan.DurationMs)),
			logging.String(logging.FieldErrorHint, "delete the cached .srt to transcribe again"),
			logging.String(logging.FieldImpact, "final chapter may extend past the audio"),
		)
	}

	intervals, err := chapters.Build(segments, matcher, chapters.Options{
		IntroName: r.cfg.Chapters.IntroName,
		OnHeading: func(seg transcript.Segment, heading chapters.Heading) {
			logger.Debug("chapter heading detected",
				logging.String(logging.FieldChapterName, seg.Text),
				logging.Int("chapter_number", heading.Number),
				logging.String("chapter_start", timecode.MillisToTimecode(seg.Start)),
			)
		},
	})
	if err != nil {
		return plan, err
	}
	if err := chapters.Validate(intervals, end); err != nil {
		return plan, err
	}
	plan.Intervals = intervals
	logger.Info("chapter timeline built",
		logging.Int("chapter_count", len(intervals)),
		logging.Int("segment_count", len(segments)),
		logging.Bool("transcript_reused", reused),
	)
	return plan, nil
}

// Run plans source, writes every artifact, and records the run.
func (r *Runner) Run(ctx context.Context, source string) (Result, error) {
	started := r.now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)

	plan, err := r.Plan(ctx, source)
	result := Result{Plan: plan, RunID: runID}
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, r.logger), "planning failed", "plan_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
		)
		return result, err
	}
	ctx = services.WithSource(ctx, plan.Source)
	logger := logging.WithContext(ctx, r.logger)

	report, err := r.exporter.BuildOutputs(services.WithStage(ctx, "export"), plan.Source, plan.Intervals, plan.Segments)
	result.Report = report
	if err != nil {
		logging.ErrorWithContext(logger, "export failed", "export_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.String(logging.FieldErrorHint, "check output_dir permissions and free space"),
		)
		return result, err
	}

	if r.recorder != nil {
		_, recErr := r.recorder.RecordRun(ctx, r.catalogRun(runID, started, result))
		if recErr != nil {
			logging.WarnWithContext(logger, "failed to record run in catalog", "catalog_record_failed",
				logging.Error(recErr),
				logging.String(logging.FieldErrorHint, "check catalog.path permissions"),
				logging.String(logging.FieldImpact, "run missing from history"),
			)
		} else {
			result.Recorded = true
		}
	}

	logger.Info("split complete",
		logging.String("title", plan.Title),
		logging.String("output_dir", report.OutputDir),
		logging.Int("chapter_count", len(plan.Intervals)),
		logging.Int("failed_chapters", len(report.Failed())),
		logging.Duration("elapsed", r.now().Sub(started)),
	)
	return result, nil
}

func (r *Runner) probe(ctx context.Context, plan *Plan) {
	logger := logging.WithContext(ctx, r.logger)
	info, err := r.prober.Inspect(ctx, plan.Source)
	if err != nil {
		msg := "could not inspect recording"
		plan.Warnings = append(plan.Warnings, msg)
		logging.WarnWithContext(logger, msg, "probe_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install ffprobe or check the source file"),
			logging.String(logging.FieldImpact, "duration check skipped"),
		)
		return
	}
	if info.AudioStreamCount() == 0 {
		msg := "recording reports no audio stream"
		plan.Warnings = append(plan.Warnings, msg)
		logging.WarnWithContext(logger, msg, "probe_no_audio",
			logging.String(logging.FieldErrorHint, "verify the source is an audio file"),
			logging.String(logging.FieldImpact, "transcription and chapter audio will likely fail"),
		)
	}
	plan.DurationMs = info.DurationMillis()
	logger.Debug("recording inspected",
		logging.Int64("duration_ms", plan.DurationMs),
		logging.String("audio_language", info.Language()),
		logging.String("title", info.Title()),
	)
}

// readTags names the book from its tags and fills in the duration when
// ffprobe could not. Unreadable tags are not worth a warning.
func (r *Runner) readTags(ctx context.Context, plan *Plan) {
	logger := logging.WithContext(ctx, r.logger)
	info, err := r.tagReader.Read(ctx, plan.Source)
	if err != nil {
		logger.Debug("embedded tags unavailable", logging.Error(err))
		return
	}
	if title := info.BookTitle(); title != "" {
		plan.Title = title
	}
	if plan.DurationMs == 0 && info.DurationMs > 0 {
		plan.DurationMs = info.DurationMs
	}
	plan.EmbeddedChapters = len(info.Chapters)
	if plan.EmbeddedChapters > 0 {
		logger.Info("recording already carries chapter markers",
			logging.Int("embedded_chapters", plan.EmbeddedChapters),
			logging.String("format", info.Format),
			logging.String(logging.FieldImpact, "markers ignored; chapters come from the transcript"),
		)
	}
}

func (r *Runner) loadTranscript(ctx context.Context, srtPath, source string) ([]transcript.Segment, bool, error) {
	logger := logging.WithContext(ctx, r.logger)
	if r.cfg.Transcription.ReuseSRT {
		if _, err := os.Stat(srtPath); err == nil {
			segments, err := transcript.ReadSRT(srtPath)
			if err != nil {
				return nil, false, err
			}
			logger.Info("using existing transcript", logging.String("transcript_path", srtPath))
			return segments, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, false, services.Wrap(services.ErrInput, "transcribe", "stat srt", srtPath, err)
		}
	}

	callCtx := ctx
	if secs := r.cfg.Transcription.TimeoutSeconds; secs > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}
	segments, err := r.transcriber.Transcribe(callCtx, source, r.cfg.WorkDir())
	if err != nil {
		return nil, false, err
	}
	if len(segments) > 0 {
		if err := fileutil.WriteFileAtomic(srtPath, []byte(export.SubRip(segments)), 0o644); err != nil {
			return nil, false, fmt.Errorf("write transcript: %w", err)
		}
		logger.Info("transcript written",
			logging.String("transcript_path", srtPath),
			logging.Int("segment_count", len(segments)),
		)
	}
	return segments, false, nil
}

func (r *Runner) catalogRun(runID string, started time.Time, result Result) catalog.Run {
	run := catalog.Run{
		ID:               runID,
		SourcePath:       result.Source,
		OutputDir:        result.Report.OutputDir,
		StartedAt:        started,
		FinishedAt:       r.now(),
		SegmentCount:     len(result.Segments),
		ChapterCount:     len(result.Intervals),
		FailedChapters:   len(result.Report.Failed()),
		TranscriptReused: result.TranscriptReused,
		AudioSkipped:     result.Report.AudioSkipped,
	}
	byIndex := make(map[int]audio.ChapterResult, len(result.Report.Chapters))
	for _, res := range result.Report.Chapters {
		byIndex[res.Index] = res
	}
	for i, iv := range result.Intervals {
		ch := catalog.Chapter{Index: i, Name: iv.Name, StartMs: iv.Start, EndMs: iv.End}
		if res, ok := byIndex[i]; ok {
			if res.OK() {
				ch.AudioPath = res.Path
			} else {
				ch.Error = res.Err.Error()
			}
		}
		run.Chapters = append(run.Chapters, ch)
	}
	return run
}
