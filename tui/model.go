package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"newsdash/dashboard"
	"newsdash/observability/logging"
	"newsdash/reader"
	"newsdash/types"
)

var errPreviewDisabled = errors.New("preview is not available")

// Mode is the input mode of the dashboard
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModePreview
)

// ArticleFetcher loads the full detail of one article, content included
type ArticleFetcher interface {
	GetArticle(ctx context.Context, id int64) (*types.Article, error)
}

// Options configures a Model
type Options struct {
	Loader    dashboard.Loader
	Details   ArticleFetcher // nil previews the listing entry as is
	Extractor *reader.Extractor
	PageSize  int
	Country   string // country sent with ingestion triggers; "" uses the backend default
	Logger    *slog.Logger
}

// Model is the dashboard screen. Filter, paging and loading state lives in
// dashboard.State and only changes through dashboard.Reduce.
type Model struct {
	ctx       context.Context
	loader    dashboard.Loader
	details   ArticleFetcher
	extractor *reader.Extractor
	logger    *slog.Logger
	country   string

	state dashboard.State

	searchInput textinput.Model
	spinner     spinner.Model
	spinning    bool

	mode   Mode
	cursor int
	width  int
	height int

	preview        *reader.Preview
	previewID      int64
	previewLoading bool
	previewErr     error

	notice string
	err    error
}

// NewModel creates the dashboard model; ctx bounds every backend call it issues
func NewModel(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = TextSearchPrompt
	ti.CharLimit = 200
	ti.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))

	return Model{
		ctx:         backgroundContext(ctx),
		loader:      opts.Loader,
		details:     opts.Details,
		extractor:   opts.Extractor,
		logger:      logger,
		country:     opts.Country,
		state:       dashboard.NewState(opts.PageSize),
		searchInput: ti,
		spinner:     sp,
		width:       100,
		height:      40,
	}
}

// Init loads categories, sources and the first page
func (m Model) Init() tea.Cmd {
	return dispatchCmd(dashboard.Init{})
}

// State returns the dashboard state
func (m Model) State() dashboard.State {
	return m.state
}

// Mode returns the current input mode
func (m Model) Mode() Mode {
	return m.mode
}

// Cursor returns the index of the selected article on the current page
func (m Model) Cursor() int {
	return m.cursor
}

// selected returns the article under the cursor
func (m Model) selected() (types.Article, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Articles) {
		return types.Article{}, false
	}
	return m.state.Articles[m.cursor], true
}

func (m Model) busy() bool {
	return m.state.Loading || m.state.Ingesting || m.previewLoading
}
