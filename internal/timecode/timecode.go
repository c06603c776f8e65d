package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"chaptersplit/internal/services"
)

// ErrInvalidTimecode marks text that is not a well-formed HH:MM:SS,mmm value.
var ErrInvalidTimecode = fmt.Errorf("%w: invalid timecode", services.ErrInput)

var timecodePattern = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2}),(\d{3})$`)

// epsilon absorbs binary floating point error (1.001*1000 == 1000.9999...) so
// truncation does not lose a millisecond the caller actually supplied.
const epsilon = 1e-6

// SecondsToTimecode renders non-negative seconds as HH:MM:SS,mmm, truncating
// sub-millisecond precision. Negative input renders as zero.
func SecondsToTimecode(seconds float64) string {
	return MillisToTimecode(truncateMillis(seconds))
}

// MillisToTimecode renders an integer millisecond offset as HH:MM:SS,mmm.
func MillisToTimecode(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	secs := (ms % 60_000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// TimecodeToMillis parses HH:MM:SS,mmm into milliseconds.
func TimecodeToMillis(text string) (int64, error) {
	match := timecodePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimecode, text)
	}
	hours, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: hours: %v", ErrInvalidTimecode, text, err)
	}
	minutes, _ := strconv.ParseInt(match[2], 10, 64)
	secs, _ := strconv.ParseInt(match[3], 10, 64)
	millis, _ := strconv.ParseInt(match[4], 10, 64)
	if minutes >= 60 || secs >= 60 {
		return 0, fmt.Errorf("%w: %q: minutes and seconds must be below 60", ErrInvalidTimecode, text)
	}
	return hours*3_600_000 + minutes*60_000 + secs*1000 + millis, nil
}

// TimecodeToSeconds parses HH:MM:SS,mmm into fractional seconds.
func TimecodeToSeconds(text string) (float64, error) {
	ms, err := TimecodeToMillis(text)
	if err != nil {
		return 0, err
	}
	return MillisToSeconds(ms), nil
}

// MillisToSeconds converts a millisecond timestamp to seconds.
func MillisToSeconds(ms int64) float64 {
	return float64(ms) / 1000
}

// SecondsToMillis converts seconds to the nearest whole millisecond.
func SecondsToMillis(seconds float64) int64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return int64(math.Round(seconds * 1000))
}

func truncateMillis(seconds float64) int64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return int64(math.Floor(seconds*1000 + epsilon))
}
