package config

import "time"

// Backend Constants
const (
	// DefaultBaseURL is the news API root; endpoint paths are appended to it
	DefaultBaseURL = "http://localhost:8000/api/news"

	// DefaultTimeout bounds a single backend request
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the sustained client-side request rate (requests/second)
	DefaultRateLimit = 5.0

	// DefaultRateBurst is how many requests may be issued back to back
	DefaultRateBurst = 10
)

// Pagination Constants
const (
	// DefaultPageSize matches the backend's page size
	DefaultPageSize = 50

	// MaxVisiblePages is the width of the page-number window
	MaxVisiblePages = 5
)

// User-facing Messages
const (
	// LoadErrorMessage is shown when the article listing fails
	LoadErrorMessage = "Failed to load articles. Please try again."

	// IngestFailedMessage is the acknowledgement returned when an ingestion trigger fails
	IngestFailedMessage = "Failed to fetch news."

	// FallbackImageURL is displayed for articles without an image
	FallbackImageURL = "https://images.unsplash.com/photo-1504711434969-e33886168d5c?w=800&q=80"
)

// Reader Constants
const (
	// ReaderTimeout bounds the download of an article for preview
	ReaderTimeout = 30 * time.Second
)
