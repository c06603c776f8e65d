package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"chaptersplit/internal/timecode"
	"chaptersplit/internal/transcript"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := min(int64(chunkSize), remaining)
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteSRT writes segments as a SubRip file at path.
func WriteSRT(t testing.TB, path string, segments []transcript.Segment) {
	t.Helper()

	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(strings.Join([]string{
			strconv.Itoa(i + 1),
			timecode.MillisToTimecode(seg.Start) + " --> " + timecode.MillisToTimecode(seg.End),
			seg.Text,
			"",
			"",
		}, "\n"))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write srt %s: %v", path, err)
	}
}
