package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/notepad/internal"
	"github.com/starford/notepad/internal/terminal"
	pkgconfig "github.com/starford/notepad/pkg/config"
)

var version = "dev"

// loadConfig reads the --config file. A missing file means defaults.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadIfExists(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if db := cmd.String("db"); db != "" {
		cfg.SQLite.Path = db
	}
	return cfg, nil
}

func runTerminal(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithIO(os.Stdin, os.Stdout, terminal.Interactive(os.Stdin)),
	}
	if err := internal.RunTerminal(ctx, opts...); err != nil {
		return fmt.Errorf("notepad error: %w", err)
	}
	return nil
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version)); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "notepad",
		Usage:   "A small notebook kept in a local SQLite file",
		Version: version,
		Action:  runTerminal,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the SQLite database (overrides sqlite.path)",
				Sources: cli.EnvVars("NOTEPAD_DB"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Open the notepad in the terminal (default)",
				Action: runTerminal,
			},
			{
				Name:   "serve",
				Usage:  "Serve the notes over HTTP with live events",
				Action: runServer,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the notes to MCP clients over stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
