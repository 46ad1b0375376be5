// Package cli wires the newsdash commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"newsdash/client"
	"newsdash/config"
	"newsdash/observability/logging"
	"newsdash/reader"
	"newsdash/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo records build metadata for the version command
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	configPath string
	baseURL    string
	logLevel   string
	country    string // dashboard only
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:           "newsdash",
		Short:         "Terminal news dashboard",
		Long:          "newsdash browses a paginated news API with search, category and source filters.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runTUI(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "path to config file (default "+config.DefaultConfigPath()+")")
	pf.StringVar(&o.baseURL, "base-url", "", "news API root, e.g. http://localhost:8000/api/news")
	pf.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.Flags().StringVar(&o.country, "country", "", "country sent when fetching news from the dashboard (backend default: us)")

	root.AddCommand(
		newArticlesCmd(o),
		newCategoriesCmd(o),
		newSourcesCmd(o),
		newFetchCmd(o),
		newServeCmd(o),
		newExportCmd(o),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// load resolves the configuration: defaults, file, environment, then flags
func (o *rootOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, cfg.Validate()
}

// setup loads the configuration and a stderr logger for a one-shot command
func (o *rootOptions) setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := o.load()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logging.NewText(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

func (o *rootOptions) runTUI(cmd *cobra.Command) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}

	logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting dashboard", slog.String("base_url", cfg.BaseURL))
	nc := client.FromConfig(cfg, logger)
	return tui.Run(cmd.Context(), tui.Options{
		Loader:    nc,
		Details:   nc,
		Country:   o.country,
		Extractor: reader.NewExtractor(config.ReaderTimeout, logger),
		PageSize:  cfg.PageSize,
		Logger:    logger,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "newsdash %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
