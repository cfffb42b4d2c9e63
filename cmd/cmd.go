// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the library database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize the library database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write an example config.toml to the current directory",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigShow,
			},
		},
	}
}

// scanCommand indexes the local collection
func scanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan the local collection into the library index",
		ArgsUsage: "[directory]",
		Flags:     []cli.Flag{configFlag()},
		Action:    r.Scan,
	}
}

func matchFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the export artifact to this file",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Export format: m3u, json, or csv",
			Value: "m3u",
		},
		&cli.BoolFlag{
			Name:  "include-review",
			Usage: "Include review-classified matches in playlist output",
		},
		&cli.BoolFlag{
			Name:  "comment-unmatched",
			Usage: "Emit unmatched entries as M3U comments instead of dropping them",
		},
		&cli.FloatFlag{
			Name:  "auto-threshold",
			Usage: "Minimum score for an automatic match (0-100)",
		},
		&cli.FloatFlag{
			Name:  "review-threshold",
			Usage: "Minimum score to propose a match for review (0-100)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Concurrent matching workers",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the structured JSON report instead of a summary table",
		},
	}
}

// matchCommand matches a playlist file against the library
func matchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Match a playlist file against the library index",
		ArgsUsage: "<playlist>",
		Flags:     matchFlags(),
		Action:    r.Match,
	}
}

// reviewCommand matches a playlist, then opens the interactive review TUI
func reviewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     "Match a playlist, review uncertain matches interactively, then export",
		ArgsUsage: "<playlist>",
		Flags:     matchFlags(),
		Action:    r.Review,
	}
}

// searchCommand queries a streaming provider's catalog
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search a provider catalog for track metadata",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "Provider to query: qobuz or tidal",
				Value:   "qobuz",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}
