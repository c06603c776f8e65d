package transcript

import (
	"fmt"
	"strings"

	"chaptersplit/internal/services"
)

// Segment is one timestamped unit of transcribed text.
type Segment struct {
	Start int64
	End   int64
	Text  string
}

// Duration returns the segment length in milliseconds.
func (s Segment) Duration() int64 {
	return s.End - s.Start
}

// Validate checks that segments are non-empty, well-formed, and ordered by
// non-decreasing start time.
func Validate(segments []Segment) error {
	if len(segments) == 0 {
		return services.Wrap(services.ErrInput, "transcript", "validate", "transcript has no segments", nil)
	}
	var prevStart int64
	for i, seg := range segments {
		if seg.Start < 0 {
			return services.Wrap(services.ErrInput, "transcript", "validate",
				fmt.Sprintf("segment %d starts before zero (%d ms)", i+1, seg.Start), nil)
		}
		if seg.Start > seg.End {
			return services.Wrap(services.ErrInput, "transcript", "validate",
				fmt.Sprintf("segment %d ends before it starts (%d > %d ms)", i+1, seg.Start, seg.End), nil)
		}
		if strings.TrimSpace(seg.Text) == "" {
			return services.Wrap(services.ErrInput, "transcript", "validate",
				fmt.Sprintf("segment %d has no text", i+1), nil)
		}
		if i > 0 && seg.Start < prevStart {
			return services.Wrap(services.ErrInput, "transcript", "validate",
				fmt.Sprintf("segment %d starts before segment %d", i+1, i), nil)
		}
		prevStart = seg.Start
	}
	return nil
}

// End returns the end offset of the final segment, or zero when empty.
func End(segments []Segment) int64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].End
}
