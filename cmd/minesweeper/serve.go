package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP and websockets",
		Long: `Serve games over HTTP and websockets.

Every flag can also be set through a MINES_ environment variable, e.g.
MINES_ADDR=:9000 or MINES_SESSION_TTL=30m. The token secret is read from
MINES_TOKEN_SECRET only.

Examples:
  minesweeper serve --development
  minesweeper serve --addr :9000 --base-path /api`,
		RunE: runServe,
	}

	flags := serveCmd.Flags()
	flags.String("addr", ":8080", "Address to listen on")
	flags.String("base-path", "", "Prefix for every route")
	flags.Duration("session-ttl", time.Hour, "Drop games idle for longer than this")
	flags.Duration("sweep-interval", time.Minute, "How often idle games are dropped")
	flags.Int("max-cells", 100*100, "Largest board a client may create")
	flags.Duration("token-lifetime", 24*time.Hour, "Validity of game tokens")
	flags.StringSlice("ws-origins", nil, "Allowed origins, all when empty")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		return err
	}

	a, err := app.New(logger, cfg)
	if err != nil {
		logger.Error("failed to create app", slog.Any("error", err))
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx); err != nil {
		logger.Error("failed to serve", slog.Any("error", err))
		return err
	}
	return nil
}
