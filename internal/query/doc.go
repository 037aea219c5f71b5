// Package query evaluates field/value queries against track metadata.
//
// A field query selects metadata entries by key and a value query filters the
// selected entries by their stringified value. In keyword mode the two differ
// on purpose: any field term may match a key, while every value term must
// occur in the value. Double-quoted phrases are single terms. In regex mode
// each query is a case-insensitive RE2 pattern; a pattern that does not
// compile makes every record fail without affecting the other input's state.
//
// The general query is a separate album-title substring filter.
package query
