package chapters

import (
	"fmt"
	"strings"

	"chaptersplit/internal/textutil"
)

// MaxNameLength bounds the sanitized chapter name used in file names.
const MaxNameLength = 45

// SanitizeName makes a chapter name safe for file names: characters outside
// [A-Za-z0-9_.\-] become '_' and the result is cut to MaxNameLength.
// Spaces are folded to '_' as well so names never need shell quoting.
func SanitizeName(name string) string {
	safe := strings.ReplaceAll(textutil.ReplaceUnsafe(name), " ", "_")
	return textutil.Truncate(safe, MaxNameLength)
}

// FileName returns "<NN>_<sanitized name>.<ext>" for the chapter at index.
func FileName(index int, name, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	base := fmt.Sprintf("%02d_%s", index, SanitizeName(name))
	if ext == "" {
		return base
	}
	return base + "." + ext
}
