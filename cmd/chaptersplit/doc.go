// Package main hosts the chaptersplit CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into pipeline runs
// (split), timeline previews (chapters), catalog queries (history), readiness
// reports (status), and configuration scaffolding (config). It centralizes
// configuration resolution, .env loading, and structured logging setup so
// subcommands can focus on presentation.
//
// Keep this package lean: add new functionality to the internal packages
// first, then surface it through a dedicated command or flag here.
package main
