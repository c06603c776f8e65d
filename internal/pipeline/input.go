package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"chaptersplit/internal/services"
)

// SourceExtension is the recording type picked up from the input directory.
const SourceExtension = ".mp3"

// ResolveInput returns the recording to process. An explicit path wins; a
// directory (explicit or inputDir) yields its first .mp3 by name.
func ResolveInput(explicit, inputDir string) (string, error) {
	target := strings.TrimSpace(explicit)
	if target == "" {
		target = strings.TrimSpace(inputDir)
	}
	if target == "" {
		return "", services.Wrap(services.ErrInput, "resolve", "input", "no source file or input directory", nil)
	}
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrInput, "resolve", "input", "source not found: "+target, err)
		}
		return "", services.Wrap(services.ErrInput, "resolve", "input", target, err)
	}
	if !info.IsDir() {
		return filepath.Abs(target)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return "", services.Wrap(services.ErrInput, "resolve", "read input dir", target, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), SourceExtension) {
			continue
		}
		return filepath.Abs(filepath.Join(target, entry.Name()))
	}
	return "", services.Wrap(services.ErrInput, "resolve", "input",
		fmt.Sprintf("no %s files in %s", SourceExtension, target), nil)
}

// TranscriptPath returns the SubRip path kept beside source.
func TranscriptPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".srt"
}
