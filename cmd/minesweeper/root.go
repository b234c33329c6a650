package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	v      = config.NewViper()
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "minesweeper",
	Short:        "Minesweeper rules engine, game server and terminal client",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.BindFlags(v, cmd.Flags()); err != nil {
			return err
		}
		logger = config.NewLogger(cmd.ErrOrStderr(), v.GetBool("development"))
		slog.SetDefault(logger)
		mines.Log = logger
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("development", false, "Debug logging and a throwaway token secret")
}
