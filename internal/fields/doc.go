// Package fields turns the raw metadata field names observed in a catalog
// into shortcut options for the field query.
//
// Raw names are split on "/" into sub-names. Sub-names that mention a pinned
// role (composer, arranger, lyricist) collapse into that role's option, whose
// search term is the role's fixed keyword list. All other sub-names are
// grouped by their Han text, or by lowercased Latin text when no Han text is
// present. Pinned options come first in role order; generic options follow,
// sorted by label with a locale collator.
package fields
