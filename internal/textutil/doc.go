// Package textutil provides text processing utilities for case-insensitive
// matching, display titles, and filename sanitization.
//
// The primary use cases are:
//   - Folding text for case-insensitive substring checks (exclusion phrases)
//   - Deriving human-readable book titles from source file names
//   - Replacing filesystem-unsafe characters in chapter file names
package textutil
