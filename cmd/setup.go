package main

import (
	"context"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"

	"crate/internal/shared"
)

// Setup initializes the library database and applies the schema.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, tracks, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := tracks.Count()
	if err != nil {
		return err
	}

	r.logger.Info("database ready", "path", config.Database.Path, "tracks", count)
	return r.writePlainln("Database initialized at %s (%d tracks indexed)", config.Database.Path, count)
}

// ConfigInit writes the example configuration file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	return r.writePlainln("Wrote %s", path)
}

// ConfigShow prints the effective configuration as TOML.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	return toml.NewEncoder(r.output).Encode(config)
}
