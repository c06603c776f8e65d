// Package export renders a chapter timeline into the artifact set written next
// to each processed recording.
//
// The emitters in this package are pure string builders: SubRip transcripts,
// CUE sheets, Markdown chapter books, and a raw millisecond dump of the
// transcript. Coordinator owns the output directory for a single source file:
// it takes an advisory lock on the directory, writes every text artifact
// atomically, and then hands the same interval snapshot to the audio splitter.
// Text artifacts are always complete before any audio work begins, and a
// failed chapter file never invalidates them.
package export
