package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	playPreset string
	playRows   int
	playCols   int
	playMines  int
	playSeed   uint64
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play a game in the terminal.

Type one command per line:
  o ROW COL   reveal a cell
  s ROW COL   flag, question or clear a hidden cell; chord a number
  g           show the board
  q           quit

Examples:
  minesweeper play --preset hard
  minesweeper play --rows 8 --cols 30 --mines 50 --seed 42`,
		RunE: runPlay,
	}

	flags := playCmd.Flags()
	flags.StringVarP(&playPreset, "preset", "p", "easy", "Board preset: easy, medium or hard")
	flags.IntVar(&playRows, "rows", 0, "Board rows, overrides the preset")
	flags.IntVar(&playCols, "cols", 0, "Board columns")
	flags.IntVar(&playMines, "mines", 0, "Number of mines")
	flags.Uint64Var(&playSeed, "seed", 0, "Seed for a reproducible layout")
	playCmd.MarkFlagsRequiredTogether("rows", "cols", "mines")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	rows, cols, count := playRows, playCols, playMines
	if !cmd.Flags().Changed("rows") {
		preset, err := config.LookupPreset(playPreset)
		if err != nil {
			return err
		}
		rows, cols, count = preset.Rows, preset.Cols, preset.Mines
	}

	var opts []mines.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, mines.WithRand(rand.New(rand.NewPCG(playSeed, playSeed))))
	}

	b, err := mines.New(rows, cols, count, opts...)
	if err != nil {
		return err
	}
	return play(b, cmd.InOrStdin(), cmd.OutOrStdout())
}

var errQuit = errors.New("quit")

// play reads commands from in until the game ends, in runs dry or the
// player quits, redrawing the board after every accepted line.
func play(b *mines.Board, in io.Reader, out io.Writer) error {
	draw(out, b)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		update, err := step(b, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n> ", err)
			continue
		}
		if update.Terminal() {
			fmt.Fprint(out, b)
			fmt.Fprintf(out, "you %s\n", update.Outcome)
			return nil
		}
		draw(out, b)
	}
	return scanner.Err()
}

func step(b *mines.Board, line string) (mines.Update, error) {
	line = strings.TrimSpace(line)
	if line == "q" {
		return mines.Update{}, errQuit
	}
	return command.Run(b, line)
}

func draw(out io.Writer, b *mines.Board) {
	fmt.Fprint(out, b)
	fmt.Fprintf(out, "mines left: %d\n> ", b.MinesRemaining())
}
