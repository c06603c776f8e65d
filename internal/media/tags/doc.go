// Package tags reads the metadata a recording already carries: its title
// tags, its length, and any chapter markers a publisher embedded (ID3 CHAP
// frames, QuickTime chapter tracks, FLAC cue sheets).
//
// The pipeline uses it to name the book and to report embedded markers next
// to the transcript-derived timeline. Nothing here is required for a split;
// a file that cannot be parsed only costs the display title.
package tags
