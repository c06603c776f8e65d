package export

import (
	"fmt"
	"strings"

	"chaptersplit/internal/chapters"
	"chaptersplit/internal/timecode"
	"chaptersplit/internal/transcript"
)

// SubRip renders segments as a SubRip transcript with 1-based cue numbers.
func SubRip(segments []transcript.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1,
			timecode.MillisToTimecode(seg.Start),
			timecode.MillisToTimecode(seg.End),
			seg.Text,
		)
	}
	return b.String()
}

// CueSheet renders a CUE sheet referencing sourceName with one track per
// interval.
func CueSheet(sourceName string, intervals []chapters.Interval) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FILE \"%s\" WAVE\n", cueQuote(sourceName))
	for i, iv := range intervals {
		fmt.Fprintf(&b, "  TRACK %02d AUDIO\n", i+1)
		fmt.Fprintf(&b, "    TITLE \"%s\"\n", cueQuote(iv.Name))
		fmt.Fprintf(&b, "    INDEX 01 %s\n", timecode.MillisToTimecode(iv.Start))
	}
	return b.String()
}

func cueQuote(value string) string {
	return strings.ReplaceAll(value, `"`, "'")
}

// Markdown renders one section per interval holding the text of every segment
// that starts inside it. The final interval also claims segments starting
// exactly at its end so a zero-length tail never drops text.
func Markdown(intervals []chapters.Interval, segments []transcript.Segment) string {
	var b strings.Builder
	for i, iv := range intervals {
		last := i == len(intervals)-1
		texts := make([]string, 0, 16)
		for _, seg := range segments {
			if seg.Start < iv.Start {
				continue
			}
			if seg.Start < iv.End || (last && seg.Start == iv.End) {
				texts = append(texts, seg.Text)
			}
		}
		fmt.Fprintf(&b, "# %s\n\n%s\n\n", iv.Name, strings.Join(texts, " "))
	}
	return b.String()
}

// RawDump renders each segment with its raw millisecond offsets.
func RawDump(segments []transcript.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "t0: %d, t1: %d\n%s\n\n", seg.Start, seg.End, seg.Text)
	}
	return b.String()
}
