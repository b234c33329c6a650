package main

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func packedBoard(t *testing.T) *mines.Board {
	t.Helper()
	b, err := mines.New(9, 9, 72, mines.WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	return b
}

func TestPlayWins(t *testing.T) {
	var out bytes.Buffer
	err := play(packedBoard(t), strings.NewReader("s 0 0\nbogus\no 4 4\no 0 1\n"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "mines left: 72")
	assert.Contains(t, text, "mines left: 71")
	assert.Contains(t, text, "error: unknown command")
	assert.True(t, strings.HasSuffix(text, "you won\n"), text)
}

func TestPlayQuit(t *testing.T) {
	var out bytes.Buffer
	b := packedBoard(t)
	err := play(b, strings.NewReader("g\nq\no 4 4\n"), &out)
	require.NoError(t, err)
	assert.False(t, b.IsGameOver())
	assert.Equal(t, 2, strings.Count(out.String(), "mines left: 72"))
}

func TestPlayCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("o 4 4\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"play", "--rows", "9", "--cols", "9", "--mines", "72", "--seed", "3"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "you won")
}
