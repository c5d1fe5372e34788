package domain

// Scores awarded per match location.
const (
	TitleMatchScore   = 10
	ContentMatchScore = 3
)

// DefaultSearchLimit caps results when SearchOptions.Limit is not set.
const DefaultSearchLimit = 20

// MatchType says where a query matched.
type MatchType string

const (
	// MatchTitle is a match in the page title.
	MatchTitle MatchType = "title"

	// MatchContent is a match in the page content.
	MatchContent MatchType = "content"
)

// SearchOptions configures a search query.
type SearchOptions struct {
	// Language restricts results to one language partition.
	Language string

	// Limit is the maximum number of candidates fetched from the store.
	Limit int
}

// Match is one location where the query was found.
type Match struct {
	// Type is the match location.
	Type MatchType `json:"type"`

	// Text is the full title for title matches and a snippet for
	// content matches.
	Text string `json:"text"`
}

// SearchResult represents a single search hit.
type SearchResult struct {
	PageID     string  `json:"uniqueId"`
	Title      string  `json:"title"`
	Path       string  `json:"path"`
	Score      int     `json:"score"`
	Matches    []Match `json:"matches"`
	MatchCount int     `json:"matchCount"`
}
