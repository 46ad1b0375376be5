package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"newsdash/dashboard"
)

// View implements tea.Model interface
func (m Model) View() string {
	if m.mode == ModePreview {
		return m.renderPreview()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n")

	if m.mode == ModeSearch {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")

	b.WriteString(m.renderArticles())

	if bar := RenderPagination(m.state); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	b.WriteString("\n\n")
	if m.mode == ModeSearch {
		b.WriteString(InfoStyle.Render(TextFooterSearch))
	} else {
		b.WriteString(InfoStyle.Render(TextFooterNormal))
	}
	return b.String()
}

func (m Model) renderFilters() string {
	category, source := TextAll, TextAll
	if m.state.SelectedCategory != "" {
		category = m.state.CategoryName()
	}
	if m.state.SelectedSource != "" {
		source = m.state.SourceName()
	}

	parts := []string{
		FilterLabelStyle.Render("Category: ") + FilterValueStyle.Render(category),
		FilterLabelStyle.Render("Source: ") + FilterValueStyle.Render(source),
	}
	if m.state.SearchText != "" {
		parts = append(parts, FilterLabelStyle.Render("Search: ")+FilterValueStyle.Render(strconv.Quote(m.state.SearchText)))
	}
	line := strings.Join(parts, "   ")
	if m.state.HasActiveFilters() {
		line += "\n" + InfoStyle.Render(TextActiveFilters)
	}
	return line
}

func (m Model) renderStatus() string {
	var parts []string

	switch m.state.Status() {
	case dashboard.StatusIdle, dashboard.StatusLoading:
		parts = append(parts, m.spinner.View()+" "+InfoStyle.Render(TextLoading))
	case dashboard.StatusError:
		parts = append(parts, ErrorStyle.Render("✗ "+m.state.Error))
	case dashboard.StatusLoaded:
		parts = append(parts, StatusStyle.Render(fmt.Sprintf("%d articles", m.state.TotalCount)))
	}

	if m.state.Ingesting {
		parts = append(parts, m.spinner.View()+" "+InfoStyle.Render(TextIngesting))
	} else if m.notice != "" {
		parts = append(parts, InfoStyle.Render(m.notice))
	}
	if m.err != nil {
		parts = append(parts, ErrorStyle.Render(m.err.Error()))
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderArticles() string {
	if len(m.state.Articles) == 0 {
		if m.state.Status() != dashboard.StatusLoaded {
			return ""
		}
		return InfoStyle.Render(TextNoArticles) + "\n" + InfoStyle.Render(TextNoArticlesTip)
	}

	// header, filters, status, pagination and footer take roughly 10 lines
	visible := max((m.height-10)/cardHeight, 1)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.state.Articles))

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, RenderCard(m.state.Articles[i], i == m.cursor, m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RenderPagination draws the page window of s; nothing when everything fits on one page
func RenderPagination(s dashboard.State) string {
	if s.TotalPages <= 1 {
		return ""
	}

	var parts []string
	if s.CurrentPage > 1 {
		parts = append(parts, PageStyle.Render("« Prev"))
	}
	for _, p := range s.VisiblePages() {
		if p == s.CurrentPage {
			parts = append(parts, HighlightStyle.Render(strconv.Itoa(p)))
		} else {
			parts = append(parts, PageStyle.Render(strconv.Itoa(p)))
		}
	}
	if s.CurrentPage < s.TotalPages {
		parts = append(parts, PageStyle.Render("Next »"))
	}

	summary := InfoStyle.Render(fmt.Sprintf("Page %d of %d (%d articles)", s.CurrentPage, s.TotalPages, s.TotalCount))
	return strings.Join(parts, "") + "  " + summary
}

func (m Model) renderPreview() string {
	a, ok := m.selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	switch {
	case m.previewLoading:
		b.WriteString(m.spinner.View() + " " + InfoStyle.Render(TextPreviewLoad))
	case m.previewErr != nil:
		b.WriteString(CardTitleStyle.Render(a.Title))
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render(m.previewErr.Error()))
		if a.Description != "" {
			b.WriteString("\n\n")
			b.WriteString(a.Description)
		}
	case m.preview != nil:
		b.WriteString(CardTitleStyle.Render(m.preview.Title))
		b.WriteString("\n")
		var meta []string
		for _, s := range []string{m.preview.SiteName, m.preview.Byline} {
			if s != "" {
				meta = append(meta, s)
			}
		}
		b.WriteString(InfoStyle.Render(strings.Join(meta, " · ")))
		b.WriteString("\n\n")
		text := m.preview.Text
		if text == "" {
			text = m.preview.Excerpt
		}
		b.WriteString(clipLines(text, max(m.height-12, 5)))
	}
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(a.URL))

	width := max(m.width-6, 20)
	return PreviewStyle.Width(width).Render(b.String()) + "\n" +
		InfoStyle.Render("o open in browser | esc back")
}

// clipLines keeps the first n lines of s
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}
