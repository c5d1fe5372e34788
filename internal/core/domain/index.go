package domain

// DefaultTitle is stored when a page has no title.
const DefaultTitle = "Untitled"

// DefaultLanguage is used when a caller does not name a language.
const DefaultLanguage = "en"

// IndexedPage is the searchable record kept for one page.
// There is at most one IndexedPage per PageID in a store.
type IndexedPage struct {
	// PageID is the page's unique identifier.
	PageID string

	// Language is the language the page was last indexed under.
	Language string

	// Title is the page title, DefaultTitle when the page had none.
	Title string

	// Content is the flattened plain text of the page body.
	Content string

	// Path is the display/navigation path of the page.
	Path string

	// ModifiedAt is the source page's last-modified time in epoch seconds.
	ModifiedAt int64

	// IndexedAt is when the page was last (re)indexed, in epoch seconds.
	IndexedAt int64
}

// IndexAllResult summarises a bulk re-index run.
type IndexAllResult struct {
	// RunID identifies the run in logs.
	RunID string `json:"runId"`

	// Language is the language that was re-indexed.
	Language string `json:"language"`

	// Indexed counts pages indexed successfully.
	Indexed int `json:"indexed"`

	// Errors counts pages that failed, plus one for a listing failure.
	Errors int `json:"errors"`
}
