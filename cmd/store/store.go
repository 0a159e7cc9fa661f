package store

import (
	"context"
	"fmt"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/assetcompass/internal/config"
	"github.com/martinsuchenak/assetcompass/internal/log"
	"github.com/martinsuchenak/assetcompass/internal/storage"
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "Path to a YAML config file"},
		&cli.StringFlag{Name: "data-dir", Usage: "Directory holding the SQLite database"},
	}
}

// open resolves the data directory and opens the store, which applies any
// pending migrations.
func open(cmd *cli.Command) (*storage.SQLiteStorage, error) {
	cfg, err := config.Load(cmd.GetString("config"), nil)
	if err != nil {
		return nil, err
	}
	if dir := cmd.GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	store, err := storage.NewSQLiteStorage(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store in %s: %w", cfg.DataDir, err)
	}
	return store, nil
}

// Commands returns the database maintenance commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:        "migrate",
			Usage:       "Apply pending schema migrations",
			Description: "Create the database if needed and bring its schema up to date",
			Flags:       flags(),
			Run: func(ctx context.Context, cmd *cli.Command) error {
				store, err := open(cmd)
				if err != nil {
					return err
				}
				defer store.Close()

				applied, err := store.Migrate(ctx)
				if err != nil {
					return err
				}
				version, err := store.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				log.Info("Schema up to date", "path", store.Path(), "version", version, "applied", applied)
				fmt.Printf("Schema at version %d (%d applied)\n", version, applied)
				return nil
			},
		},
		{
			Name:        "seed",
			Usage:       "Load the demo inventory",
			Description: "Insert the sample datacenters, servers, hosts, addresses, persons and assignments into an empty database",
			Flags:       flags(),
			Run: func(ctx context.Context, cmd *cli.Command) error {
				store, err := open(cmd)
				if err != nil {
					return err
				}
				defer store.Close()

				seeded, counts, err := storage.Seed(ctx, store)
				if err != nil {
					return err
				}
				if !seeded {
					fmt.Println("Database already contains data, nothing seeded")
					return nil
				}
				log.Info("Demo inventory loaded", "path", store.Path(), "counts", counts.String())
				fmt.Println("Seeded:", counts.String())
				return nil
			},
		},
	}
}
