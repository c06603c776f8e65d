// Package preflight provides readiness checks for the filesystem paths and
// external tools chaptersplit depends on.
//
// These checks run in two contexts:
//   - The split command calls RunAll before processing and refuses to start
//     when a required path is unusable, so a long transcription never runs
//     against an output directory it cannot write.
//   - The CLI "chaptersplit status" command uses the individual check
//     functions to display readiness.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
