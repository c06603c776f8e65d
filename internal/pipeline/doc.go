// Package pipeline runs one recording end to end: resolve the source, load
// the exclusion phrases once, reuse or produce a transcript, build the chapter
// timeline, write every artifact, and record the run.
//
// Collaborators (transcriber, prober, exporter, catalog) are interfaces so the
// command layer wires real tools while tests substitute stubs.
package pipeline
