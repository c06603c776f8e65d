// Package audio cuts a source recording into per-chapter files.
//
// Splitter fans chapter intervals out to a bounded set of workers. Each
// worker extracts its region into a private temp file, transcodes it into
// the final chapter file, and always removes the temp file. Failures are
// recorded per chapter; one failing chapter never stops the others.
//
// The FFmpeg type is the production Tool. Tests inject a command runner or a
// fake Tool instead of spawning ffmpeg.
package audio
