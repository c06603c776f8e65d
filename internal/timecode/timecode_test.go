package timecode_test

import (
	"errors"
	"math"
	"testing"

	"chaptersplit/internal/services"
	"chaptersplit/internal/timecode"
)

func TestSecondsToTimecode(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{65.5, "00:01:05,500"},
		{1.001, "00:00:01,001"},
		{3599.9999, "00:59:59,999"},
		{3661.25, "01:01:01,250"},
		{90000, "25:00:00,000"},
		{360000.5, "100:00:00,500"},
		{-3, "00:00:00,000"},
	}
	for _, tc := range cases {
		if got := timecode.SecondsToTimecode(tc.seconds); got != tc.want {
			t.Fatalf("SecondsToTimecode(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestMillisToTimecode(t *testing.T) {
	if got := timecode.MillisToTimecode(3_723_004); got != "01:02:03,004" {
		t.Fatalf("unexpected timecode %q", got)
	}
}

func TestTimecodeToSecondsRejectsMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"00:01:05.500",
		"00-01-05,500",
		"00:1:05,500",
		"00:01:05,50",
		"aa:01:05,500",
		"00:61:05,500",
		"00:01:75,500",
		" 00:01:05,500",
	} {
		_, err := timecode.TimecodeToSeconds(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		if !errors.Is(err, timecode.ErrInvalidTimecode) || !errors.Is(err, services.ErrInput) {
			t.Fatalf("expected invalid timecode input error for %q, got %v", input, err)
		}
	}
}

func TestRoundTripTruncatesToMillisecond(t *testing.T) {
	for _, x := range []float64{0, 0.0004, 0.001, 1.2345, 59.9999, 65.5, 3600.001, 7322.987654, 123456.789} {
		got, err := timecode.TimecodeToSeconds(timecode.SecondsToTimecode(x))
		if err != nil {
			t.Fatalf("round trip %v: %v", x, err)
		}
		want := math.Floor(x*1000+1e-6) / 1000
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("round trip %v = %v, want %v", x, got, want)
		}
	}
}

func TestMillisConversions(t *testing.T) {
	if got := timecode.MillisToSeconds(1500); got != 1.5 {
		t.Fatalf("MillisToSeconds = %v", got)
	}
	if got := timecode.SecondsToMillis(1.001); got != 1001 {
		t.Fatalf("SecondsToMillis = %v", got)
	}
	if got := timecode.SecondsToMillis(-1); got != 0 {
		t.Fatalf("SecondsToMillis(-1) = %v", got)
	}
}
