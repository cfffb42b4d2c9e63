package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"crate/internal/ui"
)

// Review matches a playlist, opens the interactive TUI over the uncertain
// matches, and exports the confirmed results.
func (r *Runner) Review(ctx context.Context, cmd *cli.Command) error {
	results, diags, err := r.runMatch(ctx, cmd)
	if err != nil {
		return err
	}

	reviewed, err := ui.Run(results)
	if err != nil {
		return err
	}

	if err := r.reportResults(cmd, reviewed, diags); err != nil {
		return err
	}

	return r.exportResults(cmd, reviewed, diags)
}
