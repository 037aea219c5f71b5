// Package main hosts the musicplayer CLI entrypoint and command graph.
//
// The Cobra-based command tree loads the catalog from the configured source,
// renders searches, shortcut lists and track details as terminal tables or
// JSON, exports result sets, manages stored preferences, and runs the HTTP
// browser API. Configuration resolution, catalog loading and logger setup
// live in the shared command context so subcommands stay declarative.
package main
