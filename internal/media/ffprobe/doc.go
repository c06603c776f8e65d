// Package ffprobe provides a typed wrapper around ffprobe JSON output for
// audio recordings.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio stream properties and tags
//   - Format: container-level metadata (duration, size, bitrate, tags)
//   - Prober: runs ffprobe through an injectable runner
//
// Helper methods on Result expose the duration in milliseconds, the first
// audio stream, and language and title tags used to label a recording.
package ffprobe
