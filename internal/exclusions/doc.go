// Package exclusions loads per-language phrase tables that suppress false
// chapter headings (e.g. "chapter one of the sample", publisher blurbs) and
// checks transcript text against them.
//
// A table is read once per run and the phrases for the active language are
// passed down to the heading matcher; nothing in this package re-reads the
// resource per segment.
package exclusions
