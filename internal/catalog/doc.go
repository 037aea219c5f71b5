// Package catalog owns the album/track data model and the metadata loader
// that builds it.
//
// A Catalog is assembled once from a static tree: an ID manifest listing
// tab-separated id/title files, and a data index listing JSON detail files.
// Every fetch is issued concurrently and joined with a settle-all policy:
// individual ID or detail files that fail are logged and skipped, while a
// failure of the manifest or data index aborts the load. Once built, the
// catalog is read-only.
//
// Track details keep the original field order so detail panels can render
// fields as authored; search code treats them as an unordered record.
package catalog
