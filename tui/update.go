package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"newsdash/dashboard"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(msg.Width-10, 10)
		return m, nil

	case ActionMsg:
		return m.dispatch(msg.Action)

	case previewMsg:
		if msg.ArticleID != m.previewID {
			return m, nil
		}
		m.previewLoading = false
		m.preview = msg.Preview
		m.previewErr = msg.Err
		if msg.Err != nil {
			m.logger.Warn("preview failed", "article", msg.ArticleID, "error", msg.Err)
		}
		return m, nil

	case openedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			m.logger.Warn("open in browser failed", "error", msg.Err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.mode == ModeSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// dispatch runs a through the reducer and schedules the resulting effects
func (m Model) dispatch(a dashboard.Action) (Model, tea.Cmd) {
	var effects []dashboard.Effect
	m.state, effects = dashboard.Reduce(m.state, a)

	switch a.(type) {
	case dashboard.ArticlesLoaded, dashboard.ArticlesFailed:
		m.cursor = clamp(m.cursor, 0, len(m.state.Articles)-1)
	case dashboard.IngestionDone:
		m.notice = m.state.IngestMessage
	}

	cmds := make([]tea.Cmd, 0, len(effects)+1)
	for _, effect := range effects {
		if _, ok := effect.(dashboard.ScrollToTop); ok {
			m.cursor = 0
			continue
		}
		cmds = append(cmds, m.effectCmd(effect))
	}
	if m.busy() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModePreview:
		return m.handlePreviewKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.mode = ModeSearch
		m.searchInput.SetValue(m.state.SearchText)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.state.Articles)-1 {
			m.cursor++
		}
		return m, nil

	case "left", "h":
		return m.dispatch(dashboard.GotoPage{Page: m.state.CurrentPage - 1})

	case "right", "l":
		return m.dispatch(dashboard.GotoPage{Page: m.state.CurrentPage + 1})

	case "g":
		return m.dispatch(dashboard.GotoPage{Page: 1})

	case "G":
		return m.dispatch(dashboard.GotoPage{Page: m.state.TotalPages})

	case "c", "C":
		return m.dispatch(dashboard.SetCategory{Slug: cycle(m.state.SelectedCategory, m.categorySlugs(), direction(msg))})

	case "s", "S":
		return m.dispatch(dashboard.SetSource{SourceID: cycle(m.state.SelectedSource, m.sourceIDs(), direction(msg))})

	case "x":
		m.searchInput.SetValue("")
		return m.dispatch(dashboard.ClearFilters{})

	case "r":
		m.notice = ""
		return m.dispatch(dashboard.Refresh{})

	case "f":
		return m.dispatch(dashboard.TriggerIngestion{
			Category: m.state.SelectedCategory,
			Country:  m.country,
			Query:    m.state.SearchText,
		})

	case "enter", "o":
		if a, ok := m.selected(); ok {
			return m, openBrowserCmd(a.URL)
		}
		return m, nil

	case "p":
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = ModePreview
		m.preview = nil
		m.previewErr = nil
		m.previewID = a.ID
		m.previewLoading = true
		cmds := []tea.Cmd{m.previewCmd(a)}
		if !m.spinning {
			m.spinning = true
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue(m.state.SearchText)
		return m, nil

	case "enter":
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.state, _ = dashboard.Reduce(m.state, dashboard.SetSearchText{Text: m.searchInput.Value()})
		return m.dispatch(dashboard.Search{})
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "p", "q":
		m.mode = ModeNormal
		m.preview = nil
		m.previewErr = nil
		m.previewLoading = false
		m.previewID = 0
	case "enter", "o":
		if a, ok := m.selected(); ok {
			return m, openBrowserCmd(a.URL)
		}
	}
	return m, nil
}

func (m Model) categorySlugs() []string {
	out := make([]string, 0, len(m.state.Categories)+1)
	out = append(out, "")
	for _, c := range m.state.Categories {
		out = append(out, c.Slug)
	}
	return out
}

func (m Model) sourceIDs() []string {
	out := make([]string, 0, len(m.state.Sources)+1)
	out = append(out, "")
	for _, s := range m.state.Sources {
		out = append(out, s.SourceID)
	}
	return out
}

// direction is -1 for the shifted variant of a key
func direction(msg tea.KeyMsg) int {
	s := msg.String()
	if s == "C" || s == "S" {
		return -1
	}
	return 1
}

// cycle returns the option dir steps away from current, wrapping around
func cycle(current string, options []string, dir int) string {
	if len(options) == 0 {
		return ""
	}
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+dir)%n+n)%n]
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
