package api

import (
	"fmt"
	"time"

	"newsdash/types"
)

var sampleSources = []types.Source{
	{SourceID: "bbc-news", Name: "BBC News", Description: "British public service broadcaster", URL: "https://www.bbc.co.uk/news", Country: "gb", Language: "en"},
	{SourceID: "reuters", Name: "Reuters", Description: "International news agency", URL: "https://www.reuters.com", Country: "us", Language: "en"},
	{SourceID: "techcrunch", Name: "TechCrunch", Description: "Startup and technology news", URL: "https://techcrunch.com", Country: "us", Language: "en"},
	{SourceID: "the-straits-times", Name: "Straits Times", Description: "Singapore daily", URL: "https://www.straitstimes.com", Country: "sg", Language: "en"},
}

var sampleHeadlines = []struct {
	title, category string
}{
	{"Central bank holds interest rates steady", "business"},
	{"Chipmakers race to expand capacity", "technology"},
	{"New telescope captures distant galaxy", "science"},
	{"Championship final goes to extra time", "sports"},
	{"City unveils plan for greener transport", "general"},
	{"Startup raises funding for battery research", "technology"},
	{"Hospitals trial AI triage assistants", "health"},
	{"Film festival announces lineup", "entertainment"},
	{"Oil prices slip on demand worries", "business"},
	{"Researchers map coral reef recovery", "science"},
}

// SampleArticles returns n generated articles spread over a few sources and
// categories, published one hour apart before now.
func SampleArticles(n int, now time.Time) []types.Article {
	articles := make([]types.Article, 0, n)
	for i := 0; i < n; i++ {
		h := sampleHeadlines[i%len(sampleHeadlines)]
		src := sampleSources[i%len(sampleSources)]
		detail := src

		articles = append(articles, types.Article{
			SourceName:   src.Name,
			CategoryName: types.StringPtr(h.category),
			Author:       fmt.Sprintf("%s staff", src.Name),
			Title:        fmt.Sprintf("%s (%d)", h.title, i+1),
			Description:  fmt.Sprintf("%s, reported by %s.", h.title, src.Name),
			URL:          fmt.Sprintf("%s/articles/%d", src.URL, i+1),
			PublishedAt:  now.Add(-time.Duration(i) * time.Hour).UTC().Truncate(time.Second),
			Content:      fmt.Sprintf("%s. Full story number %d.", h.title, i+1),
			Country:      src.Country,
			SourceDetail: &detail,
		})
	}
	return articles
}
