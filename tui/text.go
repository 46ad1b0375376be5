package tui

// UI Text Constants
const (
	TextTitle         = "📰 News Dashboard"
	TextSearchPrompt  = "Search articles..."
	TextAll           = "All"
	TextLoading       = "Loading articles..."
	TextIngesting     = "Fetching latest news..."
	TextNoArticles    = "No articles found."
	TextNoArticlesTip = "Try adjusting your search or filters."
	TextActiveFilters = "Filters active, press 'x' to clear"
	TextPreviewLoad   = "Loading preview..."

	// Footer
	TextFooterNormal = "/ search | c/C category | s/S source | x clear | ←/→ page | j/k move | o open | p preview | f fetch | r refresh | q quit"
	TextFooterSearch = "enter search | esc cancel"
)
