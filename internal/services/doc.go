// Package services defines shared utilities consumed by the pipeline stages
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, source files, stage names, and
//     chapter indexes for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (input, configuration, external tool, timeout) uniform.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability, retries) stays consistent across the
// pipeline.
package services
