package tui

import (
	"newsdash/dashboard"
	"newsdash/reader"
)

// Messages for the tea program

// ActionMsg feeds a dashboard action back into the reducer
type ActionMsg struct {
	Action dashboard.Action
}

// previewMsg is sent when the reader preview of an article is ready
type previewMsg struct {
	ArticleID int64
	Preview   *reader.Preview
	Err       error
}

// openedMsg is sent after trying to open an article in the browser
type openedMsg struct {
	Err error
}
