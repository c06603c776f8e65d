// Package catalog records completed split runs in a SQLite database.
//
// Each run stores the source recording, output directory, counts, and one row
// per chapter with its interval, audio path, and any audio error. The
// `history` command reads it back. The schema is embedded and versioned; an
// unexpected version fails Open with ErrSchemaMismatch rather than migrating.
//
// Writes retry on SQLITE_BUSY so concurrent runs against the same state
// directory do not fail spuriously.
package catalog
