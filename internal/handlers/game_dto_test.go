package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

func TestParseNewGameDTO(t *testing.T) {
	dto, err := ParseNewGameDTO(url.Values{"preset": {"Medium"}})
	require.NoError(t, err)
	assert.Equal(t, 16, dto.Rows)
	assert.Equal(t, 16, dto.Cols)
	assert.Equal(t, 40, dto.Mines)
	assert.Nil(t, dto.Row)

	dto, err = ParseNewGameDTO(url.Values{
		"rows": {"5"}, "cols": {"7"}, "mines": {"3"},
		"row": {"0"}, "col": {"6"}, "extra": {"x"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, dto.Rows)
	assert.Equal(t, 7, dto.Cols)
	assert.Equal(t, 3, dto.Mines)
	require.NotNil(t, dto.Row)
	require.NotNil(t, dto.Col)
	assert.Equal(t, 0, *dto.Row)
	assert.Equal(t, 6, *dto.Col)

	_, err = ParseNewGameDTO(url.Values{"preset": {"insane"}})
	assert.Error(t, err)
	_, err = ParseNewGameDTO(url.Values{"rows": {"five"}})
	assert.Error(t, err)
	_, err = ParseNewGameDTO(url.Values{"row": {"1"}})
	assert.Error(t, err)
}

func TestParseMoveDTO(t *testing.T) {
	dto, move, err := ParseMoveDTO(url.Values{
		"move": {"secondary"}, "row": {"0"}, "col": {"2"},
	})
	require.NoError(t, err)
	assert.Equal(t, Secondary, move)
	assert.Equal(t, 0, dto.Row)
	assert.Equal(t, 2, dto.Col)

	_, move, err = ParseMoveDTO(url.Values{
		"move": {"REVEAL"}, "row": {"1"}, "col": {"1"},
	})
	require.NoError(t, err)
	assert.Equal(t, Reveal, move)

	_, _, err = ParseMoveDTO(url.Values{"move": {"reveal"}, "row": {"1"}})
	assert.Error(t, err)
	_, _, err = ParseMoveDTO(url.Values{"move": {"dig"}, "row": {"1"}, "col": {"1"}})
	assert.Error(t, err)
}

func TestEngineStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: (9, 9)", mines.ErrOutOfBounds), http.StatusBadRequest},
		{fmt.Errorf("%w: no", mines.ErrInvalidConfiguration), http.StatusBadRequest},
		{mines.ErrNotRevealed, http.StatusBadRequest},
		{command.ErrBadArgs, http.StatusBadRequest},
		{session.ErrNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		assert.Equal(t, test.status, engineStatus(test.err), test.err.Error())
	}
}
