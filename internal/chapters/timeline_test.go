package chapters

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"chaptersplit/internal/services"
	"chaptersplit/internal/transcript"
)

func seg(start, end int64, text string) transcript.Segment {
	return transcript.Segment{Start: start, End: end, Text: text}
}

func TestBuildScenario(t *testing.T) {
	m := mustMatcher(t, "", nil)
	segments := []transcript.Segment{
		seg(0, 1000, "Hello"),
		seg(1000, 2000, "Chapter One begins"),
		seg(2000, 3000, "More text"),
	}
	got, err := Build(segments, m, Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []Interval{
		{Start: 0, End: 1000, Name: "Intro"},
		{Start: 1000, End: 3000, Name: "Chapter One begins"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %#v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("interval %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestBuildWithoutHeadingsYieldsIntro(t *testing.T) {
	m := mustMatcher(t, "", nil)
	segments := []transcript.Segment{seg(500, 1500, "just"), seg(1500, 9000, "talking")}
	got, err := Build(segments, m, Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(got) != 1 || got[0] != (Interval{Start: 0, End: 9000, Name: "Intro"}) {
		t.Fatalf("unexpected intervals: %#v", got)
	}
}

func TestBuildHeadingAtZeroKeepsEmptyIntro(t *testing.T) {
	m := mustMatcher(t, "", nil)
	segments := []transcript.Segment{seg(0, 1000, "Chapter 1"), seg(1000, 2000, "text")}
	got, err := Build(segments, m, Options{IntroName: "Opening"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(got) != 2 || got[0] != (Interval{Start: 0, End: 0, Name: "Opening"}) {
		t.Fatalf("unexpected intervals: %#v", got)
	}
}

func TestBuildPreservesZeroLengthIntervals(t *testing.T) {
	m := mustMatcher(t, "", nil)
	segments := []transcript.Segment{
		seg(0, 1000, "intro"),
		seg(1000, 1000, "Chapter 1"),
		seg(1000, 2000, "Chapter 2"),
		seg(2000, 3000, "body"),
	}
	got, err := Build(segments, m, Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 intervals, got %#v", got)
	}
	if got[1] != (Interval{Start: 1000, End: 1000, Name: "Chapter 1"}) {
		t.Fatalf("expected zero-length interval, got %#v", got[1])
	}
	if err := Validate(got, 3000); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestBuildEmptyTranscript(t *testing.T) {
	m := mustMatcher(t, "", nil)
	_, err := Build(nil, m, Options{})
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestBuildReportsHeadings(t *testing.T) {
	m := mustMatcher(t, "", nil)
	var numbers []int
	_, err := Build([]transcript.Segment{seg(0, 10, "Chapter two"), seg(10, 20, "Chapter 3")}, m, Options{
		OnHeading: func(_ transcript.Segment, h Heading) { numbers = append(numbers, h.Number) },
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(numbers) != 2 || numbers[0] != 2 || numbers[1] != 3 {
		t.Fatalf("unexpected headings: %v", numbers)
	}
}

func TestBuildIntervalsAlwaysCoverTranscript(t *testing.T) {
	m := mustMatcher(t, "", nil)
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(40)
		segments := make([]transcript.Segment, 0, n)
		var cursor int64
		headings := 0
		for i := 0; i < n; i++ {
			cursor += int64(rng.Intn(3)) * 500
			end := cursor + int64(rng.Intn(4000))
			text := "narration"
			if rng.Intn(4) == 0 {
				text = fmt.Sprintf("Chapter %d", i+1)
				headings++
			}
			segments = append(segments, seg(cursor, end, text))
		}
		got, err := Build(segments, m, Options{})
		if err != nil {
			t.Fatalf("run %d: Build returned error: %v", run, err)
		}
		if err := Validate(got, segments[n-1].End); err != nil {
			t.Fatalf("run %d: %v (%#v)", run, err, got)
		}
		if len(got) != headings+1 {
			t.Fatalf("run %d: expected %d intervals, got %d", run, headings+1, len(got))
		}
		if headings == 0 && got[0].Name != DefaultIntroName {
			t.Fatalf("run %d: expected Intro, got %q", run, got[0].Name)
		}
	}
}

func TestValidateRejectsGaps(t *testing.T) {
	cases := [][]Interval{
		nil,
		{{Start: 5, End: 10, Name: "a"}},
		{{Start: 0, End: 10, Name: "a"}, {Start: 11, End: 20, Name: "b"}},
		{{Start: 0, End: 10, Name: "a"}, {Start: 10, End: 9, Name: "b"}},
	}
	for i, intervals := range cases {
		if err := Validate(intervals, 20); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
	if err := Validate([]Interval{{Start: 0, End: 10, Name: "a"}}, 20); err == nil {
		t.Fatal("expected coverage error")
	}
}

func TestIntervalSeconds(t *testing.T) {
	iv := Interval{Start: 1500, End: 4000}
	if iv.StartSeconds() != 1.5 || iv.DurationSeconds() != 2.5 || iv.Duration() != 2500 {
		t.Fatalf("unexpected conversions: %v %v %v", iv.StartSeconds(), iv.DurationSeconds(), iv.Duration())
	}
}
