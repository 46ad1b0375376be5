package tui

import (
	"fmt"
	"strings"
	"time"

	"newsdash/config"
	"newsdash/types"
)

// cardHeight is the rendered height of one article card including borders
const cardHeight = 6

var now = time.Now

// RenderCard draws one article; width is the total width including the border
func RenderCard(a types.Article, selected bool, width int) string {
	inner := max(width-4, 20)

	var meta []string
	if a.SourceName != "" {
		meta = append(meta, BadgeStyle.Render(a.SourceName))
	}
	if c := a.Category(); c != "" {
		meta = append(meta, InfoStyle.Render(c))
	}
	if !a.PublishedAt.IsZero() {
		meta = append(meta, InfoStyle.Render(relativeTime(a.PublishedAt)))
	}
	if a.Country != "" {
		meta = append(meta, InfoStyle.Render(strings.ToUpper(a.Country)))
	}
	if a.Author != "" {
		meta = append(meta, InfoStyle.Render("by "+truncate(a.Author, 30)))
	}

	lines := []string{
		CardTitleStyle.Render(truncate(a.Title, inner)),
		strings.Join(meta, InfoStyle.Render(" · ")),
		truncate(a.Description, inner),
		InfoStyle.Render(truncate("🖼  "+imageURL(a), inner)),
	}

	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return style.Width(inner).Render(strings.Join(lines, "\n"))
}

// imageURL falls back to a stock image for articles without one
func imageURL(a types.Article) string {
	if a.URLToImage == "" {
		return config.FallbackImageURL
	}
	return a.URLToImage
}

// truncate shortens s to n runes, ending in "..."
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func relativeTime(t time.Time) string {
	d := now().Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
