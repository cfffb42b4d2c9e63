package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"crate/internal/export"
	"crate/internal/match"
	"crate/internal/playlist"
	"crate/internal/shared"
)

// Match parses a playlist, matches it against the library index, and
// prints a summary (or JSON report). With --output it also writes the
// export artifact.
func (r *Runner) Match(ctx context.Context, cmd *cli.Command) error {
	results, diags, err := r.runMatch(ctx, cmd)
	if err != nil {
		return err
	}

	if err := r.reportResults(cmd, results, diags); err != nil {
		return err
	}

	return r.exportResults(cmd, results, diags)
}

// runMatch is the shared parse+match pipeline behind the match and review
// commands.
func (r *Runner) runMatch(ctx context.Context, cmd *cli.Command) ([]match.Result, []playlist.Diagnostic, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, nil, fmt.Errorf("%w: playlist file", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd)

	matchCfg := buildMatchConfig(cmd, config)
	if err := matchCfg.Validate(); err != nil {
		return nil, nil, err
	}

	entries, diags, err := playlist.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	r.logger.Info("parsed playlist", "path", path, "entries", len(entries), "diagnostics", len(diags))

	db, tracks, err := r.openDatabase(config)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	results, err := match.Match(ctx, entries, tracks, matchCfg)
	if err != nil {
		return nil, nil, err
	}

	return results, diags, nil
}

// buildMatchConfig layers CLI flag overrides on top of the TOML matching
// section.
func buildMatchConfig(cmd *cli.Command, config *shared.Config) match.Config {
	cfg := match.FromSettings(config.Matching)

	if cmd.IsSet("auto-threshold") {
		cfg.AutoThreshold = cmd.Float("auto-threshold")
	}
	if cmd.IsSet("review-threshold") {
		cfg.ReviewThreshold = cmd.Float("review-threshold")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}

	return cfg
}

// reportResults prints either the summary table or the JSON report.
func (r *Runner) reportResults(cmd *cli.Command, results []match.Result, diags []playlist.Diagnostic) error {
	if cmd.Bool("json") {
		report := export.BuildReport(results, export.Options{Diagnostics: diags})
		return r.writeJSON(report, true)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.output)
	t.AppendHeader(table.Row{"#", "Entry", "Class", "Score", "Track"})

	auto, review, unmatched := 0, 0, 0
	for i, result := range results {
		entry := result.Entry.Title
		if artist, ok := result.Entry.Artist.Get(); ok {
			entry = artist + " - " + result.Entry.Title
		}

		trackPath := ""
		if result.Track != nil {
			trackPath = result.Track.Path()
		}

		switch result.Classification {
		case match.ClassAuto:
			auto++
		case match.ClassReview:
			review++
		default:
			unmatched++
		}

		t.AppendRow(table.Row{i + 1, entry, string(result.Classification), fmt.Sprintf("%.1f", result.Score), trackPath})
	}
	t.Render()

	if err := r.writePlainln("%d auto, %d review, %d unmatched", auto, review, unmatched); err != nil {
		return err
	}

	for _, diag := range diags {
		if err := r.writePlainln("parse warning: %s", diag); err != nil {
			return err
		}
	}
	return nil
}

// exportResults writes the artifact named by --output, if any.
func (r *Runner) exportResults(cmd *cli.Command, results []match.Result, diags []playlist.Diagnostic) error {
	outPath := cmd.String("output")
	if outPath == "" {
		return nil
	}

	format, err := export.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	// Flags override the [export] config section.
	config := r.loadConfig(cmd)
	opts := export.Options{
		IncludeReview:    config.Export.IncludeReview,
		CommentUnmatched: config.Export.CommentUnmatched,
		Diagnostics:      diags,
	}
	if cmd.IsSet("include-review") {
		opts.IncludeReview = cmd.Bool("include-review")
	}
	if cmd.IsSet("comment-unmatched") {
		opts.CommentUnmatched = cmd.Bool("comment-unmatched")
	}

	artifact, err := export.Export(results, format, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, artifact, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	r.logger.Info("wrote export", "path", outPath, "format", format)
	return r.writePlainln("Wrote %s", outPath)
}
