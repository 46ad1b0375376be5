package rssfeeds

import (
	"sort"
	"strings"
)

// Default configuration values
const (
	DefaultFeedPreset = "st"
	DefaultCount      = 20
	DefaultCategory   = "general"
	DefaultCountry    = "us"
)

// FeedConfig describes one RSS feed and the source it publishes as
type FeedConfig struct {
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	SourceID string `json:"source_id" yaml:"source_id"`
	Category string `json:"category" yaml:"category"`
	Country  string `json:"country" yaml:"country"`
	Language string `json:"language" yaml:"language"`
	Homepage string `json:"homepage" yaml:"homepage"`
}

// FeedPresets maps friendly keys to RSS feed configurations
var FeedPresets = map[string]FeedConfig{
	"cna": {
		Name:     "Channel News Asia",
		URL:      "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml",
		SourceID: "channel-news-asia",
		Category: "general",
		Country:  "sg",
		Language: "en",
		Homepage: "https://www.channelnewsasia.com",
	},
	"st": {
		Name:     "Straits Times",
		URL:      "https://www.straitstimes.com/news/singapore/rss.xml",
		SourceID: "the-straits-times",
		Category: "general",
		Country:  "sg",
		Language: "en",
		Homepage: "https://www.straitstimes.com",
	},
	"hn": {
		Name:     "Hacker News",
		URL:      "https://hnrss.org/newest",
		SourceID: "hacker-news",
		Category: "technology",
		Country:  "us",
		Language: "en",
		Homepage: "https://news.ycombinator.com",
	},
	"tr": {
		Name:     "Technology Review",
		URL:      "https://www.technologyreview.com/feed/",
		SourceID: "mit-technology-review",
		Category: "technology",
		Country:  "us",
		Language: "en",
		Homepage: "https://www.technologyreview.com",
	},
	"npr": {
		Name:     "NPR News",
		URL:      "https://feeds.npr.org/1001/rss.xml",
		SourceID: "npr",
		Category: "general",
		Country:  "us",
		Language: "en",
		Homepage: "https://www.npr.org",
	},
	"bbc": {
		Name:     "BBC News",
		URL:      "https://feeds.bbci.co.uk/news/rss.xml",
		SourceID: "bbc-news",
		Category: "general",
		Country:  "gb",
		Language: "en",
		Homepage: "https://www.bbc.co.uk/news",
	},
	"bbc-business": {
		Name:     "BBC News",
		URL:      "https://feeds.bbci.co.uk/news/business/rss.xml",
		SourceID: "bbc-news",
		Category: "business",
		Country:  "gb",
		Language: "en",
		Homepage: "https://www.bbc.co.uk/news",
	},
	"nasa": {
		Name:     "NASA",
		URL:      "https://www.nasa.gov/news-release/feed/",
		SourceID: "nasa",
		Category: "science",
		Country:  "us",
		Language: "en",
		Homepage: "https://www.nasa.gov",
	},
}

// ResolveFeedURL resolves a feed identifier to a URL
// If the input is a preset name, returns the corresponding URL
// Otherwise, returns the input as-is (assuming it's a direct URL)
func ResolveFeedURL(feedInput string) string {
	if config, exists := FeedPresets[feedInput]; exists {
		return config.URL
	}
	return feedInput
}

// SelectFeeds returns the presets of feeds matching category and country,
// ordered by preset key. Empty arguments match everything.
func SelectFeeds(feeds map[string]FeedConfig, category, country string) []FeedConfig {
	keys := make([]string, 0, len(feeds))
	for key := range feeds {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var selected []FeedConfig
	for _, key := range keys {
		feed := feeds[key]
		if category != "" && !strings.EqualFold(feed.Category, category) {
			continue
		}
		if country != "" && !strings.EqualFold(feed.Country, country) {
			continue
		}
		selected = append(selected, feed)
	}
	return selected
}
