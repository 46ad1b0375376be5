package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newsdash/common"
	"newsdash/config"
	"newsdash/types"
)

// newObjectStore opens the export bucket; tests replace it
var newObjectStore = func(ctx context.Context, cfg config.S3Config) (common.ObjectStore, error) {
	return common.NewS3(ctx, cfg)
}

func newExportCmd(o *rootOptions) *cobra.Command {
	var (
		q      types.ArticleQuery
		bucket string
		prefix string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one page of articles as JSON to stdout, a file or S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := o.setup(cmd)
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.S3.Bucket = bucket
			}
			if cmd.Flags().Changed("prefix") {
				cfg.S3.Prefix = prefix
			}

			s, err := listPage(cmd.Context(), cfg, logger, q)
			if err != nil {
				return err
			}
			q.Page = s.CurrentPage
			snap := common.NewSnapshot(q, articlePage(s.TotalCount, s.Articles), time.Now())

			switch {
			case cfg.S3.Bucket != "":
				return uploadSnapshot(cmd, cfg.S3, snap, logger)
			case out != "" && out != "-":
				return writeSnapshotFile(out, snap)
			default:
				return common.Write(cmd.OutOrStdout(), snap)
			}
		},
	}

	queryFlags(cmd.Flags(), &q)
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket to upload to (default from config s3.bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix inside the bucket")
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write instead of stdout")
	return cmd
}

func articlePage(count int, articles []types.Article) types.Page[types.Article] {
	return types.Page[types.Article]{Count: count, Results: articles}
}

func uploadSnapshot(cmd *cobra.Command, cfg config.S3Config, snap common.Snapshot, logger *slog.Logger) error {
	store, err := newObjectStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	key, err := common.NewExporter(store, cfg.Bucket, cfg.Prefix, logger).Upload(cmd.Context(), snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s\n", cfg.Bucket, key)
	return nil
}

func writeSnapshotFile(path string, snap common.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := common.Write(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
