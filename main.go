package main

import (
	"context"
	"os"

	"github.com/paularlott/cli"
	"github.com/paularlott/cli/env"

	"github.com/martinsuchenak/assetcompass/cmd/inventory"
	"github.com/martinsuchenak/assetcompass/cmd/server"
	"github.com/martinsuchenak/assetcompass/cmd/store"
	"github.com/martinsuchenak/assetcompass/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if it exists
	env.Load()

	// Initialize structured logging
	log.Configure("info", "console")

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:         "log-level",
			Usage:        "Log level (trace, debug, info, warn, error)",
			DefaultValue: "info",
			EnvVars:      []string{"ASSETCOMPASS_LOG_LEVEL"},
			Global:       true,
		},
		&cli.StringFlag{
			Name:         "log-format",
			Usage:        "Log format (console, json)",
			DefaultValue: "console",
			EnvVars:      []string{"ASSETCOMPASS_LOG_FORMAT"},
			Global:       true,
		},
	}

	rootCmd := &cli.Command{
		Name:        "assetcompass",
		Version:     version,
		Usage:       "Infrastructure asset inventory",
		Description: "Track datacenters, servers, hosts, IP addresses and who is responsible for them",
		Flags:       append(flags, inventory.Flags()...),
		PreRun: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			log.Configure(cmd.GetString("log-level"), cmd.GetString("log-format"))
			log.Debug("Starting", "version", version, "commit", commit, "date", date)
			return ctx, nil
		},
		Commands: append([]*cli.Command{
			server.Command(),
			{
				Name:        "store",
				Usage:       "Database maintenance commands",
				Description: "Migrate and seed the local SQLite database",
				Commands:    store.Commands(),
			},
		}, inventory.Commands()...),
	}

	if err := rootCmd.Execute(context.Background()); err != nil {
		log.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
