package chapters

import (
	"fmt"

	"chaptersplit/internal/services"
	"chaptersplit/internal/timecode"
	"chaptersplit/internal/transcript"
)

// DefaultIntroName labels content that precedes the first detected heading.
const DefaultIntroName = "Intro"

// Interval is one named chapter span in milliseconds, [Start, End).
type Interval struct {
	Start int64
	End   int64
	Name  string
}

// Duration returns the interval length in milliseconds.
func (iv Interval) Duration() int64 {
	return iv.End - iv.Start
}

// StartSeconds returns the interval start in seconds.
func (iv Interval) StartSeconds() float64 {
	return timecode.MillisToSeconds(iv.Start)
}

// DurationSeconds returns the interval length in seconds.
func (iv Interval) DurationSeconds() float64 {
	return timecode.MillisToSeconds(iv.Duration())
}

// Options tunes timeline construction.
type Options struct {
	// IntroName labels the implicit leading interval. Defaults to "Intro".
	IntroName string
	// OnHeading, when set, is called for each detected heading in order.
	OnHeading func(seg transcript.Segment, heading Heading)
}

// Build partitions segments into chapter intervals. Each heading segment
// closes the running interval at its own start and opens a new one named
// after its text; the last interval ends at the final segment's end.
// Zero-length intervals from coincident headings are kept.
func Build(segments []transcript.Segment, matcher *Matcher, opts Options) ([]Interval, error) {
	if len(segments) == 0 {
		return nil, services.Wrap(services.ErrInput, "timeline", "build", "transcript has no segments", nil)
	}
	if matcher == nil {
		return nil, fmt.Errorf("timeline build: matcher required")
	}
	name := opts.IntroName
	if name == "" {
		name = DefaultIntroName
	}

	intervals := make([]Interval, 0, 8)
	var start int64
	for _, seg := range segments {
		heading, ok := matcher.Match(seg.Text)
		if !ok {
			continue
		}
		intervals = append(intervals, Interval{Start: start, End: seg.Start, Name: name})
		start = seg.Start
		name = seg.Text
		if opts.OnHeading != nil {
			opts.OnHeading(seg, heading)
		}
	}
	intervals = append(intervals, Interval{Start: start, End: segments[len(segments)-1].End, Name: name})
	return intervals, nil
}

// Validate checks that intervals are ascending, contiguous, start at zero,
// and end at end.
func Validate(intervals []Interval, end int64) error {
	if len(intervals) == 0 {
		return services.Wrap(services.ErrInput, "timeline", "validate", "no intervals", nil)
	}
	if intervals[0].Start != 0 {
		return services.Wrap(services.ErrInput, "timeline", "validate",
			fmt.Sprintf("first interval starts at %d ms", intervals[0].Start), nil)
	}
	for i, iv := range intervals {
		if iv.End < iv.Start {
			return services.Wrap(services.ErrInput, "timeline", "validate",
				fmt.Sprintf("interval %d ends before it starts", i), nil)
		}
		if i > 0 && intervals[i-1].End != iv.Start {
			return services.Wrap(services.ErrInput, "timeline", "validate",
				fmt.Sprintf("gap or overlap between intervals %d and %d", i-1, i), nil)
		}
	}
	if last := intervals[len(intervals)-1]; last.End != end {
		return services.Wrap(services.ErrInput, "timeline", "validate",
			fmt.Sprintf("timeline ends at %d ms, transcript at %d ms", last.End, end), nil)
	}
	return nil
}
