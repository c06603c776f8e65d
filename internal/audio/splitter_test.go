package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chaptersplit/internal/chapters"
	"chaptersplit/internal/services"
)

type fakeTool struct {
	mu              sync.Mutex
	extractFail     map[int64]error
	transcodeErrs   []error
	transcodeCalls  int
	tempSeen        []string
	active, maxSeen int32
	delay           time.Duration
}

func (f *fakeTool) Extract(ctx context.Context, source string, startSec, durationSec float64, dest string) error {
	cur := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		prev := atomic.LoadInt32(&f.maxSeen)
		if cur <= prev || atomic.CompareAndSwapInt32(&f.maxSeen, prev, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.tempSeen = append(f.tempSeen, dest)
	err := f.extractFail[int64(startSec*1000)]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(dest, []byte("wav"), 0o644)
}

func (f *fakeTool) Transcode(ctx context.Context, source, dest string) error {
	f.mu.Lock()
	call := f.transcodeCalls
	f.transcodeCalls++
	var err error
	if call < len(f.transcodeErrs) {
		err = f.transcodeErrs[call]
	}
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(dest, []byte("mp3"), 0o644)
}

func sampleIntervals() []chapters.Interval {
	return []chapters.Interval{
		{Start: 0, End: 1000, Name: "Intro"},
		{Start: 1000, End: 5000, Name: "Chapter 1: Begin"},
		{Start: 5000, End: 9000, Name: "Chapter Two"},
	}
}

func TestSplitWritesOneFilePerInterval(t *testing.T) {
	outDir := t.TempDir()
	tempDir := t.TempDir()
	tool := &fakeTool{}
	s := NewSplitter(tool, WithTempDir(tempDir), WithWorkers(2))

	results := s.Split(context.Background(), "book.mp3", outDir, sampleIntervals())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := []string{"00_Intro.mp3", "01_Chapter_1__Begin.mp3", "02_Chapter_Two.mp3"}
	for i, res := range results {
		if !res.OK() {
			t.Fatalf("chapter %d failed: %v", i, res.Err)
		}
		if res.Index != i || filepath.Base(res.Path) != want[i] {
			t.Fatalf("result %d = %+v, want %s", i, res, want[i])
		}
		if _, err := os.Stat(res.Path); err != nil {
			t.Fatalf("expected chapter file: %v", err)
		}
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected temp dir to be empty, found %d entries", len(entries))
	}
}

func TestSplitContinuesAfterChapterFailure(t *testing.T) {
	outDir := t.TempDir()
	tempDir := t.TempDir()
	tool := &fakeTool{extractFail: map[int64]error{
		1000: services.Wrap(services.ErrExternalTool, "audio", "extract", "ffmpeg failed", errors.New("exit 1")),
	}}
	s := NewSplitter(tool, WithTempDir(tempDir))

	results := s.Split(context.Background(), "book.mp3", outDir, sampleIntervals())
	if !results[0].OK() || !results[2].OK() {
		t.Fatalf("expected other chapters to succeed: %+v", results)
	}
	if results[1].OK() || !errors.Is(results[1].Err, services.ErrExternalTool) {
		t.Fatalf("expected external tool failure, got %v", results[1].Err)
	}
	if _, err := os.Stat(results[1].Path); !os.IsNotExist(err) {
		t.Fatal("failed chapter must not leave an output file")
	}
	entries, _ := os.ReadDir(tempDir)
	if len(entries) != 0 {
		t.Fatalf("temp file leaked after failure: %d entries", len(entries))
	}
}

func TestSplitRetriesTranscodeTimeoutOnly(t *testing.T) {
	timeout := services.Wrap(services.ErrTimeout, "audio", "transcode", "ffmpeg timed out", context.DeadlineExceeded)
	tool := &fakeTool{transcodeErrs: []error{timeout}}
	s := NewSplitter(tool, WithTempDir(t.TempDir()), WithTranscodeRetries(2))

	results := s.Split(context.Background(), "book.mp3", t.TempDir(), sampleIntervals()[:1])
	if !results[0].OK() {
		t.Fatalf("expected retry to succeed: %v", results[0].Err)
	}
	if results[0].Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", results[0].Attempts)
	}

	hard := services.Wrap(services.ErrExternalTool, "audio", "transcode", "ffmpeg failed", errors.New("bad codec"))
	tool = &fakeTool{transcodeErrs: []error{hard, hard}}
	s = NewSplitter(tool, WithTempDir(t.TempDir()), WithTranscodeRetries(2))
	results = s.Split(context.Background(), "book.mp3", t.TempDir(), sampleIntervals()[:1])
	if results[0].OK() || results[0].Attempts != 1 {
		t.Fatalf("non-timeout failures must not retry: %+v", results[0])
	}
}

func TestSplitGivesUpAfterRetryBudget(t *testing.T) {
	timeout := services.Wrap(services.ErrTimeout, "audio", "transcode", "ffmpeg timed out", nil)
	tool := &fakeTool{transcodeErrs: []error{timeout, timeout, timeout}}
	s := NewSplitter(tool, WithTempDir(t.TempDir()), WithTranscodeRetries(1))

	results := s.Split(context.Background(), "book.mp3", t.TempDir(), sampleIntervals()[:1])
	if results[0].OK() || results[0].Attempts != 2 {
		t.Fatalf("expected failure after 2 attempts, got %+v", results[0])
	}
	if !services.Retryable(results[0].Err) {
		t.Fatalf("expected timeout classification, got %v", results[0].Err)
	}
}

func TestSplitBoundsConcurrency(t *testing.T) {
	intervals := make([]chapters.Interval, 8)
	for i := range intervals {
		intervals[i] = chapters.Interval{Start: int64(i) * 1000, End: int64(i+1) * 1000, Name: "Chapter"}
	}
	tool := &fakeTool{delay: 20 * time.Millisecond}
	s := NewSplitter(tool, WithTempDir(t.TempDir()), WithWorkers(3))

	results := s.Split(context.Background(), "book.mp3", t.TempDir(), intervals)
	for _, res := range results {
		if !res.OK() {
			t.Fatalf("unexpected failure: %v", res.Err)
		}
	}
	if max := atomic.LoadInt32(&tool.maxSeen); max > 3 {
		t.Fatalf("expected at most 3 concurrent extracts, saw %d", max)
	}
}

func TestSplitCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tool := &fakeTool{}
	s := NewSplitter(tool, WithTempDir(t.TempDir()))

	results := s.Split(ctx, "book.mp3", t.TempDir(), sampleIntervals())
	for _, res := range results {
		if res.OK() {
			t.Fatal("expected cancelled chapters to fail")
		}
	}
	if len(tool.tempSeen) != 0 {
		t.Fatalf("expected no extract calls, got %d", len(tool.tempSeen))
	}
}
