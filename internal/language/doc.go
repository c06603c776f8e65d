// Package language normalizes language codes (ISO 639-1, ISO 639-2, English
// names, region-tagged forms) so the transcription engine, the exclusion
// phrase tables, and media metadata agree on one key per language.
package language
