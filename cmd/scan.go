package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"crate/internal/library"
	"crate/internal/shared"
)

// Scan walks the collection directory and reconciles the library index.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	root := cmd.Args().First()
	if root == "" {
		root = config.Library.Root
	}
	if root == "" {
		return fmt.Errorf("%w: scan directory (argument or [library] root in config)", shared.ErrMissingArgument)
	}

	db, tracks, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	indexer := library.NewIndexer(tracks, shared.WithLogger(r.logger, "component", "indexer"))

	r.logger.Info("scanning collection", "root", root)
	stats, err := indexer.Index(ctx, root)
	if err != nil {
		return err
	}

	return r.writePlainln("Scanned %d files: %d added, %d updated, %d unchanged, %d pruned, %d failed",
		stats.Scanned, stats.Added, stats.Updated, stats.Unchanged, stats.Pruned, stats.Failed)
}
