package export

import (
	"strings"
	"testing"

	"chaptersplit/internal/chapters"
	"chaptersplit/internal/transcript"
)

func scenario() ([]chapters.Interval, []transcript.Segment) {
	segments := []transcript.Segment{
		{Start: 0, End: 1000, Text: "Hello"},
		{Start: 1000, End: 2000, Text: "Chapter One begins"},
		{Start: 2000, End: 3000, Text: "More text"},
	}
	intervals := []chapters.Interval{
		{Start: 0, End: 1000, Name: "Intro"},
		{Start: 1000, End: 3000, Name: "Chapter One begins"},
	}
	return intervals, segments
}

func TestSubRipFormat(t *testing.T) {
	_, segments := scenario()
	got := SubRip(segments[:2])
	want := "1\n00:00:00,000 --> 00:00:01,000\nHello\n\n" +
		"2\n00:00:01,000 --> 00:00:02,000\nChapter One begins\n\n"
	if got != want {
		t.Fatalf("SubRip mismatch:\n%q\nwant\n%q", got, want)
	}
}

func TestSubRipRoundTrip(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, End: 1499, Text: "first line"},
		{Start: 1499, End: 65500, Text: "second"},
		{Start: 3_600_001, End: 3_601_234, Text: "an hour in"},
	}
	parsed, err := transcript.ParseSRT(strings.NewReader(SubRip(segments)))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(parsed) != len(segments) {
		t.Fatalf("expected %d segments, got %d", len(segments), len(parsed))
	}
	for i := range segments {
		if absDiff(parsed[i].Start, segments[i].Start) > 1 || absDiff(parsed[i].End, segments[i].End) > 1 {
			t.Fatalf("segment %d timing drifted: %+v vs %+v", i, parsed[i], segments[i])
		}
		if parsed[i].Text != segments[i].Text {
			t.Fatalf("segment %d text = %q, want %q", i, parsed[i].Text, segments[i].Text)
		}
	}
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestCueSheet(t *testing.T) {
	intervals, _ := scenario()
	got := CueSheet("book.mp3", intervals)
	want := "FILE \"book.mp3\" WAVE\n" +
		"  TRACK 01 AUDIO\n    TITLE \"Intro\"\n    INDEX 01 00:00:00,000\n" +
		"  TRACK 02 AUDIO\n    TITLE \"Chapter One begins\"\n    INDEX 01 00:00:01,000\n"
	if got != want {
		t.Fatalf("CueSheet mismatch:\n%s\nwant\n%s", got, want)
	}
}

func TestCueSheetReplacesDoubleQuotes(t *testing.T) {
	got := CueSheet(`my "book".mp3`, []chapters.Interval{{Start: 0, End: 10, Name: `Chapter 1 "Dawn"`}})
	if !strings.Contains(got, `FILE "my 'book'.mp3" WAVE`) {
		t.Fatalf("file name not requoted: %s", got)
	}
	if !strings.Contains(got, `TITLE "Chapter 1 'Dawn'"`) {
		t.Fatalf("title not requoted: %s", got)
	}
}

func TestMarkdownGroupsSegmentsByStart(t *testing.T) {
	intervals, segments := scenario()
	got := Markdown(intervals, segments)
	want := "# Intro\n\nHello\n\n# Chapter One begins\n\nChapter One begins More text\n\n"
	if got != want {
		t.Fatalf("Markdown mismatch:\n%q\nwant\n%q", got, want)
	}
}

func TestMarkdownKeepsZeroLengthTail(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, End: 1000, Text: "body"},
		{Start: 1000, End: 1000, Text: "Chapter 2"},
	}
	intervals := []chapters.Interval{
		{Start: 0, End: 1000, Name: "Intro"},
		{Start: 1000, End: 1000, Name: "Chapter 2"},
	}
	got := Markdown(intervals, segments)
	if !strings.HasSuffix(got, "# Chapter 2\n\nChapter 2\n\n") {
		t.Fatalf("zero-length tail lost its text: %q", got)
	}
	if strings.Count(got, "Chapter 2\n\nChapter 2") != 1 {
		t.Fatalf("unexpected duplication: %q", got)
	}
}

func TestMarkdownEmptyInterval(t *testing.T) {
	intervals := []chapters.Interval{
		{Start: 0, End: 0, Name: "Intro"},
		{Start: 0, End: 500, Name: "Chapter 1"},
	}
	segments := []transcript.Segment{{Start: 0, End: 500, Text: "Chapter 1"}}
	got := Markdown(intervals, segments)
	want := "# Intro\n\n\n\n# Chapter 1\n\nChapter 1\n\n"
	if got != want {
		t.Fatalf("Markdown mismatch: %q", got)
	}
}

func TestRawDump(t *testing.T) {
	_, segments := scenario()
	got := RawDump(segments[:1])
	if got != "t0: 0, t1: 1000\nHello\n\n" {
		t.Fatalf("RawDump mismatch: %q", got)
	}
}
