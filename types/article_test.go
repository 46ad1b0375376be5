package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleDecodeBackendPayload(t *testing.T) {
	payload := `{
		"id": 42,
		"source_name": "BBC News",
		"category_name": null,
		"author": "Jane Doe",
		"title": "Markets rally",
		"description": "Stocks rose sharply.",
		"url": "https://example.com/markets",
		"url_to_image": "",
		"published_at": "2024-05-01T10:30:00Z",
		"country": "gb"
	}`

	var a Article
	require.NoError(t, json.Unmarshal([]byte(payload), &a))

	assert.Equal(t, int64(42), a.ID)
	assert.Equal(t, "BBC News", a.SourceName)
	assert.Nil(t, a.CategoryName)
	assert.Equal(t, "", a.Category())
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), a.PublishedAt.UTC())
	assert.Empty(t, a.Content)
	assert.Nil(t, a.SourceDetail)
}

func TestArticleCategory(t *testing.T) {
	a := Article{CategoryName: StringPtr("technology")}
	assert.Equal(t, "technology", a.Category())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	p := StringPtr("x")
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)
}

func TestEmptyPage(t *testing.T) {
	p := EmptyPage[Article]()
	assert.Equal(t, 0, p.Count)
	assert.NotNil(t, p.Results)
	assert.Len(t, p.Results, 0)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Previous)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, string(b))
}

func TestIngestRequestOmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(IngestRequest{Country: "us"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"country":"us"}`, string(b))
}
