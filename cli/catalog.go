package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"newsdash/client"
	"newsdash/types"
)

func newCategoriesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List article categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := o.setup(cmd)
			if err != nil {
				return err
			}

			categories, err := client.FromConfig(cfg, logger).ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tARTICLES")
			for _, c := range categories {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Slug, c.Name, c.ArticleCount)
			}
			return tw.Flush()
		},
	}
}

func newSourcesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List news sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := o.setup(cmd)
			if err != nil {
				return err
			}

			sources, err := client.FromConfig(cfg, logger).ListSources(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sources: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY\tARTICLES")
			for _, s := range sources {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.SourceID, s.Name, s.Country, s.ArticleCount)
			}
			return tw.Flush()
		},
	}
}

func newFetchCmd(o *rootOptions) *cobra.Command {
	var req types.IngestRequest

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Ask the backend to fetch the latest news",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := o.setup(cmd)
			if err != nil {
				return err
			}

			msg, err := client.FromConfig(cfg, logger).TriggerIngestion(cmd.Context(), req)
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			if err != nil {
				return fmt.Errorf("fetch news: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Category, "category", "", "category to fetch (backend default: general)")
	cmd.Flags().StringVar(&req.Country, "country", "", "country to fetch (backend default: us)")
	cmd.Flags().StringVar(&req.Query, "query", "", "only keep articles matching this text")
	return cmd
}
