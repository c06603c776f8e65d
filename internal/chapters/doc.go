// Package chapters turns an ordered transcript into a chapter timeline.
//
// A Matcher decides whether a single segment announces a new chapter: the
// configured keyword followed by a cardinal number (digits, or an English
// number word from one to fifty), unless the text contains an exclusion
// phrase for the active language. Build walks the segments once and emits
// contiguous, non-overlapping intervals covering [0, last segment end]; the
// segment that announces a chapter starts that chapter.
//
// Interval names keep the raw heading text. Filesystem-safe names are derived
// separately by FileName where a path is needed.
package chapters
