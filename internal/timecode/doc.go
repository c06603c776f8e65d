// Package timecode converts between fractional seconds, millisecond
// timestamps, and the SubRip "HH:MM:SS,mmm" text form.
//
// Conversions to text truncate to whole milliseconds; hours are not clamped
// so recordings longer than a day still render. Parsing is strict: anything
// other than digits separated by ':' and a single ',' is rejected with
// ErrInvalidTimecode.
package timecode
