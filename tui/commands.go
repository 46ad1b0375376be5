package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"newsdash/browser"
	"newsdash/dashboard"
	"newsdash/types"
)

// openURL is browser.Open; tests replace it
var openURL = browser.Open

// dispatchCmd delivers a to Update
func dispatchCmd(a dashboard.Action) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Action: a}
	}
}

// effectCmd runs one dashboard effect and reports its completion
func (m Model) effectCmd(effect dashboard.Effect) tea.Cmd {
	ctx, loader, logger := m.ctx, m.loader, m.logger
	return func() tea.Msg {
		action := dashboard.Execute(ctx, loader, logger, effect)
		if action == nil {
			return nil
		}
		return ActionMsg{Action: action}
	}
}

// openBrowserCmd opens the article URL in the default browser
func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{Err: openURL(url)}
	}
}

// previewCmd extracts the readable text of an article. Listings carry no
// content, so the article detail is fetched first; the page is only
// downloaded when the backend has no content either.
func (m Model) previewCmd(article types.Article) tea.Cmd {
	ctx, details, extractor, logger := m.ctx, m.details, m.extractor, m.logger
	return func() tea.Msg {
		if extractor == nil {
			return previewMsg{ArticleID: article.ID, Err: errPreviewDisabled}
		}
		if details != nil && strings.TrimSpace(article.Content) == "" {
			full, err := details.GetArticle(ctx, article.ID)
			switch {
			case err != nil:
				logger.Warn("article detail failed, extracting page", "article", article.ID, "error", err)
			case full != nil:
				article = *full
			}
		}
		p, err := extractor.Preview(ctx, article)
		return previewMsg{ArticleID: article.ID, Preview: p, Err: err}
	}
}

// backgroundContext is used when no context was supplied
func backgroundContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
