package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Controller owns a State and runs the effects of every dispatched action
// against a Loader. It backs the non-interactive commands; the TUI drives
// Reduce itself.
type Controller struct {
	mu     sync.Mutex
	state  State
	loader Loader
	logger *slog.Logger
}

// NewController creates a controller with an idle state
func NewController(loader Loader, pageSize int, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		state:  NewState(pageSize),
		loader: loader,
		logger: logger,
	}
}

// NewControllerAt creates a controller starting from s, typically a
// NewState with filters and page preset. Nothing is loaded until an action
// such as Refresh is dispatched.
func NewControllerAt(loader Loader, s State, logger *slog.Logger) *Controller {
	c := NewController(loader, s.PageSize, logger)
	c.state = s
	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch reduces a and runs the resulting effects until none remain.
// Effects of one reduction run concurrently; their completions are reduced
// in the order the effects were emitted.
func (c *Controller) Dispatch(ctx context.Context, a Action) State {
	pending := c.reduce(a)
	for len(pending) > 0 {
		actions := c.run(ctx, pending)
		pending = nil
		for _, next := range actions {
			if next == nil {
				continue
			}
			pending = append(pending, c.reduce(next)...)
		}
	}
	return c.State()
}

func (c *Controller) reduce(a Action) []Effect {
	c.mu.Lock()
	defer c.mu.Unlock()

	var effects []Effect
	c.state, effects = Reduce(c.state, a)
	c.logger.Debug("dashboard action",
		slog.String("action", actionName(a)),
		slog.Int("effects", len(effects)),
		slog.String("status", string(c.state.Status())))
	return effects
}

// run executes effects concurrently; Execute never fails, failures come back as actions
func (c *Controller) run(ctx context.Context, effects []Effect) []Action {
	actions := make([]Action, len(effects))

	g, gctx := errgroup.WithContext(ctx)
	for i, effect := range effects {
		g.Go(func() error {
			actions[i] = Execute(gctx, c.loader, c.logger, effect)
			return nil
		})
	}
	_ = g.Wait()

	return actions
}

func actionName(a Action) string {
	switch a.(type) {
	case Init:
		return "init"
	case SetSearchText:
		return "set_search_text"
	case Search:
		return "search"
	case SetCategory:
		return "set_category"
	case SetSource:
		return "set_source"
	case ClearFilters:
		return "clear_filters"
	case GotoPage:
		return "goto_page"
	case Refresh:
		return "refresh"
	case ArticlesLoaded:
		return "articles_loaded"
	case ArticlesFailed:
		return "articles_failed"
	case CategoriesLoaded:
		return "categories_loaded"
	case SourcesLoaded:
		return "sources_loaded"
	case TriggerIngestion:
		return "trigger_ingestion"
	case IngestionDone:
		return "ingestion_done"
	default:
		return "unknown"
	}
}
