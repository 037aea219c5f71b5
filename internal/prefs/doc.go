// Package prefs persists named preference strings (theme, last general
// query) in a small SQLite database under the state directory.
//
// The store follows the same conventions as other SQLite state: WAL journal,
// a busy timeout plus bounded retry on SQLITE_BUSY, and an embedded schema
// guarded by a version row.
package prefs
