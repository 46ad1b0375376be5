package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"newsdash/client"
	"newsdash/config"
	"newsdash/dashboard"
	"newsdash/tui"
	"newsdash/types"
)

// cardWidth is the width of article cards printed by the CLI
const cardWidth = 100

// queryFlags binds the article filters shared by articles and export
func queryFlags(fs *pflag.FlagSet, q *types.ArticleQuery) {
	fs.IntVar(&q.Page, "page", 1, "page number (1-indexed)")
	fs.StringVar(&q.Category, "category", "", "category slug")
	fs.StringVar(&q.Source, "source", "", "source id")
	fs.StringVar(&q.Country, "country", "", "country code")
	fs.StringVar(&q.Search, "search", "", "search text matched against title and description")
}

// listPage loads one article page through a dashboard controller preset to q.
// A failed load is an error; an empty result is not.
func listPage(ctx context.Context, cfg config.Config, logger *slog.Logger, q types.ArticleQuery) (dashboard.State, error) {
	s := dashboard.NewState(cfg.PageSize)
	s.CurrentPage = max(q.Page, 1)
	s.SelectedCategory = q.Category
	s.SelectedSource = q.Source
	s.Country = q.Country
	s.SearchText = q.Search

	ctrl := dashboard.NewControllerAt(client.FromConfig(cfg, logger), s, logger)
	s = ctrl.Dispatch(ctx, dashboard.Refresh{})
	if s.Status() == dashboard.StatusError {
		return s, errors.New(s.Error)
	}
	return s, nil
}

// pageJSON is the --json output of the articles command
type pageJSON struct {
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Count      int             `json:"count"`
	Results    []types.Article `json:"results"`
}

func newArticlesCmd(o *rootOptions) *cobra.Command {
	var (
		q      types.ArticleQuery
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "articles",
		Short: "List one page of articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := o.setup(cmd)
			if err != nil {
				return err
			}

			s, err := listPage(cmd.Context(), cfg, logger, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(pageJSON{
					Page:       s.CurrentPage,
					TotalPages: s.TotalPages,
					Count:      s.TotalCount,
					Results:    s.Articles,
				})
			}
			printArticles(out, s)
			return nil
		},
	}

	queryFlags(cmd.Flags(), &q)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	return cmd
}

func printArticles(w io.Writer, s dashboard.State) {
	if len(s.Articles) == 0 {
		fmt.Fprintln(w, tui.TextNoArticles)
		if s.HasActiveFilters() {
			fmt.Fprintln(w, tui.TextNoArticlesTip)
		}
		return
	}

	for _, a := range s.Articles {
		fmt.Fprintln(w, tui.RenderCard(a, false, cardWidth))
	}
	if bar := tui.RenderPagination(s); bar != "" {
		fmt.Fprintln(w, bar)
	} else {
		fmt.Fprintf(w, "%d articles\n", s.TotalCount)
	}
}
