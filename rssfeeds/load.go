package rssfeeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// feedFile is the layout of a feeds YAML file:
//
//	feeds:
//	  bbc:
//	    name: BBC News
//	    url: https://feeds.bbci.co.uk/news/rss.xml
//	    category: general
//	    country: gb
type feedFile struct {
	Feeds map[string]FeedConfig `yaml:"feeds"`
}

// LoadFeeds reads feed definitions from a YAML file. Entries without a URL
// are rejected; a missing name or source id is derived from the key.
func LoadFeeds(path string) (map[string]FeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds %s: %w", path, err)
	}

	var f feedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse feeds %s: %w", path, err)
	}
	if len(f.Feeds) == 0 {
		return nil, fmt.Errorf("parse feeds %s: no feeds defined", path)
	}

	for key, feed := range f.Feeds {
		if feed.URL == "" {
			return nil, fmt.Errorf("feed %q has no url", key)
		}
		if feed.Name == "" {
			feed.Name = key
		}
		if feed.SourceID == "" {
			feed.SourceID = Slugify(key)
		}
		if feed.Category == "" {
			feed.Category = DefaultCategory
		}
		f.Feeds[key] = feed
	}
	return f.Feeds, nil
}
