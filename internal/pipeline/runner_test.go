package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chaptersplit/internal/audio"
	"chaptersplit/internal/catalog"
	"chaptersplit/internal/chapters"
	"chaptersplit/internal/export"
	"chaptersplit/internal/media/ffprobe"
	"chaptersplit/internal/media/tags"
	"chaptersplit/internal/pipeline"
	"chaptersplit/internal/services"
	"chaptersplit/internal/testsupport"
	"chaptersplit/internal/transcript"
)

var bookSegments = []transcript.Segment{
	{Start: 0, End: 1000, Text: "Hello"},
	{Start: 1000, End: 2000, Text: "Chapter One begins"},
	{Start: 2000, End: 3000, Text: "More text"},
	{Start: 3000, End: 4000, Text: "See chapter two of the appendix"},
	{Start: 4000, End: 5000, Text: "Chapter 2: The Dark/Forest?"},
	{Start: 5000, End: 6000, Text: "The end"},
}

type stubTranscriber struct {
	calls    int
	segments []transcript.Segment
	err      error
}

func (s *stubTranscriber) Transcribe(context.Context, string, string) ([]transcript.Segment, error) {
	s.calls++
	return s.segments, s.err
}

type stubProber struct {
	result ffprobe.Result
	err    error
}

func (s stubProber) Inspect(context.Context, string) (ffprobe.Result, error) {
	return s.result, s.err
}

type stubTagReader struct {
	info tags.Info
	err  error
}

func (s stubTagReader) Read(context.Context, string) (tags.Info, error) {
	return s.info, s.err
}

type stubSplitter struct{ calls int }

func (s *stubSplitter) Split(_ context.Context, _ string, outputDir string, intervals []chapters.Interval) []audio.ChapterResult {
	s.calls++
	results := make([]audio.ChapterResult, len(intervals))
	for i, iv := range intervals {
		results[i] = audio.ChapterResult{
			Index:    i,
			Interval: iv,
			Path:     filepath.Join(outputDir, chapters.FileName(i, iv.Name, "mp3")),
			Attempts: 1,
		}
	}
	return results
}

type failingRecorder struct{ calls int }

func (f *failingRecorder) RecordRun(context.Context, catalog.Run) (catalog.Run, error) {
	f.calls++
	return catalog.Run{}, errors.New("disk full")
}

func writeSource(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "my_book.mp3")
	testsupport.WriteFile(t, path, 64)
	return path
}

func TestRunTranscribesAndWritesArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalog(),
		testsupport.WithExclusions(`{"en": ["of the appendix"]}`))
	source := writeSource(t, cfg.Paths.InputDir)
	store := testsupport.MustOpenCatalog(t, cfg)
	tr := &stubTranscriber{segments: bookSegments}
	splitter := &stubSplitter{}

	runner := pipeline.NewRunner(cfg,
		pipeline.WithTranscriber(tr),
		pipeline.WithProber(nil),
		pipeline.WithExporter(export.NewCoordinator(cfg.Paths.OutputDir, export.WithSplitter(splitter))),
		pipeline.WithRecorder(store),
	)
	result, err := runner.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Source != source {
		t.Fatalf("resolved %q, want %q", result.Source, source)
	}
	if tr.calls != 1 || result.TranscriptReused {
		t.Fatalf("expected one transcription, got %d (reused=%v)", tr.calls, result.TranscriptReused)
	}
	if _, err := os.Stat(pipeline.TranscriptPath(source)); err != nil {
		t.Fatalf("transcript not cached beside source: %v", err)
	}

	names := make([]string, 0, len(result.Intervals))
	for _, iv := range result.Intervals {
		names = append(names, iv.Name)
	}
	if result.Title != "My Book" {
		t.Fatalf("title %q, want %q", result.Title, "My Book")
	}
	want := []string{"Intro", "Chapter One begins", "Chapter 2: The Dark/Forest?"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Fatalf("intervals %v, want %v", names, want)
	}

	outDir := filepath.Join(cfg.Paths.OutputDir, "my_book")
	for _, name := range []string{"my_book.srt", "my_book.cue", "my_book.md", "my_book_timestamps.txt"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}
	if splitter.calls != 1 {
		t.Fatalf("expected splitter call, got %d", splitter.calls)
	}
	if got := filepath.Base(result.Report.Chapters[2].Path); got != "02_Chapter_2__The_Dark_Forest_.mp3" {
		t.Fatalf("unexpected chapter file %q", got)
	}

	if !result.Recorded {
		t.Fatal("expected run to be recorded")
	}
	run, err := store.GetRun(context.Background(), result.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.ChapterCount != 3 || len(run.Chapters) != 3 || run.Chapters[0].AudioPath == "" {
		t.Fatalf("unexpected recorded run %#v", run)
	}
}

func TestRunReusesExistingTranscript(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := writeSource(t, cfg.Paths.InputDir)
	testsupport.WriteSRT(t, pipeline.TranscriptPath(source), bookSegments[:3])
	tr := &stubTranscriber{err: errors.New("must not be called")}

	runner := pipeline.NewRunner(cfg, pipeline.WithTranscriber(tr), pipeline.WithProber(nil))
	result, err := runner.Run(context.Background(), source)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tr.calls != 0 || !result.TranscriptReused {
		t.Fatalf("expected cached transcript, calls=%d", tr.calls)
	}
	if len(result.Intervals) != 2 || result.Intervals[1].End != 3000 {
		t.Fatalf("unexpected intervals %#v", result.Intervals)
	}
	if !result.Report.AudioSkipped {
		t.Fatal("audio is disabled in the test config")
	}
}

func TestRunMissingExclusionsAbortsBeforeOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Chapters.ExclusionsPath = filepath.Join(t.TempDir(), "missing.json")
	writeSource(t, cfg.Paths.InputDir)
	tr := &stubTranscriber{segments: bookSegments}

	runner := pipeline.NewRunner(cfg, pipeline.WithTranscriber(tr), pipeline.WithProber(nil))
	_, err := runner.Run(context.Background(), "")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if tr.calls != 0 {
		t.Fatal("transcription must not start after a configuration error")
	}
	entries, _ := os.ReadDir(cfg.Paths.OutputDir)
	if len(entries) != 0 {
		t.Fatalf("no output expected, found %d entries", len(entries))
	}
}

func TestRunEmptyTranscriptIsInputError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg.Paths.InputDir)
	runner := pipeline.NewRunner(cfg,
		pipeline.WithTranscriber(&stubTranscriber{}),
		pipeline.WithProber(nil),
	)
	if _, err := runner.Run(context.Background(), ""); !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestRunTranscriberFailurePropagates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg.Paths.InputDir)
	toolErr := services.Wrap(services.ErrExternalTool, "transcribe", "run", "whisperx failed", nil)
	runner := pipeline.NewRunner(cfg,
		pipeline.WithTranscriber(&stubTranscriber{err: toolErr}),
		pipeline.WithProber(nil),
	)
	if _, err := runner.Run(context.Background(), ""); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestRunCatalogFailureIsWarning(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg.Paths.InputDir)
	rec := &failingRecorder{}
	runner := pipeline.NewRunner(cfg,
		pipeline.WithTranscriber(&stubTranscriber{segments: bookSegments}),
		pipeline.WithProber(nil),
		pipeline.WithRecorder(rec),
	)
	result, err := runner.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("catalog failure must not fail the run: %v", err)
	}
	if rec.calls != 1 || result.Recorded {
		t.Fatalf("unexpected record state calls=%d recorded=%v", rec.calls, result.Recorded)
	}
}

func TestPlanWarnsWhenTranscriptOutrunsRecording(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg.Paths.InputDir)
	probe := stubProber{result: ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "audio"}},
		Format:  ffprobe.Format{Duration: "2.5"},
	}}
	runner := pipeline.NewRunner(cfg,
		pipeline.WithTranscriber(&stubTranscriber{segments: bookSegments}),
		pipeline.WithProber(probe),
	)
	plan, err := runner.Plan(context.Background(), "")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.DurationMs != 2500 || len(plan.Warnings) != 1 {
		t.Fatalf("expected duration warning, got %+v", plan.Warnings)
	}
	entries, _ := os.ReadDir(cfg.Paths.OutputDir)
	if len(entries) != 0 {
		t.Fatal("Plan must not write artifacts")
	}
}

func TestPlanProbeFailureIsWarning(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg.Paths.InputDir)
	runner := pipeline.NewRunner(cfg,
		pipeline.WithTranscriber(&stubTranscriber{segments: bookSegments}),
		pipeline.WithProber(stubProber{err: errors.New("ffprobe missing")}),
		pipeline.WithTagReader(nil),
	)
	plan, err := runner.Plan(context.Background(), "")
	if err != nil {
		t.Fatalf("probe failure must not abort: %v", err)
	}
	if len(plan.Warnings) != 1 || plan.DurationMs != 0 {
		t.Fatalf("unexpected plan %+v", plan.Warnings)
	}
}

func TestPlanUsesEmbeddedTags(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg.Paths.InputDir)
	reader := stubTagReader{info: tags.Info{
		Album:      "The Long Road",
		DurationMs: 3000,
		Chapters:   []tags.Chapter{{Title: "One"}, {Title: "Two"}},
	}}
	runner := pipeline.NewRunner(cfg,
		pipeline.WithTranscriber(&stubTranscriber{segments: bookSegments}),
		pipeline.WithProber(nil),
		pipeline.WithTagReader(reader),
	)
	plan, err := runner.Plan(context.Background(), "")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Title != "The Long Road" || plan.EmbeddedChapters != 2 {
		t.Fatalf("unexpected plan title=%q embedded=%d", plan.Title, plan.EmbeddedChapters)
	}
	// Tag duration stands in for ffprobe, so the 6s transcript is flagged.
	if plan.DurationMs != 3000 || len(plan.Warnings) != 1 {
		t.Fatalf("expected duration warning from tags, got %d %v", plan.DurationMs, plan.Warnings)
	}
}

func TestPlanTagFailureKeepsFileTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg.Paths.InputDir)
	runner := pipeline.NewRunner(cfg,
		pipeline.WithTranscriber(&stubTranscriber{segments: bookSegments}),
		pipeline.WithProber(nil),
		pipeline.WithTagReader(stubTagReader{err: errors.New("no tags")}),
	)
	plan, err := runner.Plan(context.Background(), "")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Title != "My Book" || len(plan.Warnings) != 0 {
		t.Fatalf("unexpected plan title=%q warnings=%v", plan.Title, plan.Warnings)
	}
}
