package fields

// Category is a pinned role with a fixed keyword list. A sub-name belongs to
// the first category whose keyword occurs in its lowercased text.
type Category struct {
	Key      string
	Label    string
	Keywords []string
}

// DefaultCategories returns composer, arranger and lyricist in display order.
func DefaultCategories() []Category {
	return []Category{
		{
			Key:      "作曲",
			Label:    "Composer / 作曲",
			Keywords: []string{"作曲", "composer"},
		},
		{
			Key:   "編曲",
			Label: "Arranger / 編曲",
			Keywords: []string{
				"编曲", "編曲", "配器", "编配", "編配", "改编", "改編",
				"arranger", "adoption", "orchestrator", "original",
			},
		},
		{
			Key:      "作詞",
			Label:    "Lyricist / 作詞",
			Keywords: []string{"作词", "作詞", "lyric", "lyricist"},
		},
	}
}
