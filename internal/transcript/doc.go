// Package transcript holds the timestamped segment model produced by
// transcription and the SubRip reader used to resume from a prior run.
//
// Segments carry millisecond offsets because that is what the transcription
// engine emits; conversions to subtitle timecodes live in package timecode.
package transcript
