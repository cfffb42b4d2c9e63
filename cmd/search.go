package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"crate/internal/services"
	"crate/internal/shared"
)

// Search queries a provider catalog for track metadata.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd)

	provider, err := r.provider(ctx, cmd.String("provider"), config)
	if err != nil {
		return err
	}

	tracks, err := provider.SearchTracks(ctx, query, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.output)
	t.AppendHeader(table.Row{"ID", "Title", "Artist", "Album", "Duration", "ISRC"})
	for _, track := range tracks {
		t.AppendRow(table.Row{track.ID, track.Title, track.Artist, track.Album, shared.FormatDuration(track.Duration), track.ISRC})
	}
	t.Render()

	return nil
}

// provider builds the requested provider client from configured credentials.
func (r *Runner) provider(ctx context.Context, name string, config *shared.Config) (services.Provider, error) {
	switch name {
	case "qobuz":
		return services.NewQobuzService(config.Credentials.Qobuz.AppID, config.Credentials.Qobuz.UserToken)
	case "tidal":
		return services.NewTidalService(ctx, config.Credentials.Tidal.ClientID, config.Credentials.Tidal.ClientSecret)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", shared.ErrInvalidFlag, name)
	}
}
