package transcript

import (
	"fmt"
	"io"
	"os"
	"strings"

	"chaptersplit/internal/services"
	"chaptersplit/internal/timecode"
)

// ReadSRT parses the SubRip file at path into segments.
func ReadSRT(path string) ([]Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "transcript", "open srt", path, err)
	}
	defer file.Close()
	segments, err := ParseSRT(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return segments, nil
}

// ParseSRT reads SubRip blocks from r. Text lines after the timing line are
// joined with single spaces; blocks without text are skipped.
func ParseSRT(r io.Reader) ([]Segment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "transcript", "read srt", "", err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	var segments []Segment
	for blockNum, lines := range splitBlocks(content) {
		if len(lines) < 3 {
			continue
		}
		start, end, err := parseTiming(lines[1])
		if err != nil {
			return nil, services.Wrap(services.ErrInput, "transcript", "parse srt",
				fmt.Sprintf("block %d", blockNum+1), err)
		}
		text := joinText(lines[2:])
		if text == "" {
			continue
		}
		segments = append(segments, Segment{Start: start, End: end, Text: text})
	}
	return segments, nil
}

func splitBlocks(content string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func parseTiming(line string) (int64, int64, error) {
	parts := strings.Split(line, " --> ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, err := timecode.TimecodeToMillis(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := timecode.TimecodeToMillis(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func joinText(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
