package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	ErrBoardTooLarge = errors.New("board too large")
	ErrNotYourGame   = errors.New("token does not grant access to this game")
)

type GameHandler struct {
	logger   *slog.Logger
	store    *session.Store
	tokens   *config.Tokens
	ws       *config.WebSocket
	maxCells int
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	tokens *config.Tokens,
	ws *config.WebSocket,
	maxCells int,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		store:    store,
		tokens:   tokens,
		ws:       ws,
		maxCells: maxCells,
	}
}

// engineStatus maps errors returned by the engine and the store to a
// response status.
func engineStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrNotRevealed),
		errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, command.ErrBadArgs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if dto.Rows > 0 && dto.Cols > g.maxCells/dto.Rows {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest,
			fmt.Errorf("%w: at most %d cells allowed", ErrBoardTooLarge, g.maxCells))
		return
	}

	s, err := g.store.Create(dto.Rows, dto.Cols, dto.Mines)
	if err != nil {
		status := engineStatus(err)
		if status == http.StatusInternalServerError {
			w.WriteHeader(status)
			g.logger.Error("unable to create game session", slog.Any("error", err))
			return
		}
		SendErrorOrLog(w, g.logger, status, err)
		return
	}

	var update mines.Update
	if dto.Row != nil {
		err := s.Do(func(b *mines.Board) (err error) {
			update, err = b.Reveal(*dto.Row, *dto.Col)
			return
		})
		if err != nil {
			g.store.Delete(s.ID)
			SendErrorOrLog(w, g.logger, engineStatus(err), err)
			return
		}
	}

	token, err := g.tokens.Sign(s.ID.String())
	if err != nil {
		g.store.Delete(s.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to sign game token", slog.Any("error", err))
		return
	}

	resp := NewGameSessionDTO(s.Snapshot()).WithUpdate(update)
	resp.Token = token
	SendJSONOrLog(w, g.logger, resp)
}

// authorize looks up the session named in the path and checks that the
// request carries its token. On failure the response has been written.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, session.ErrNotFound)
		return nil, false
	}
	s, err := g.store.Get(id)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	claims, ok := middleware.GameClaims(r.Context())
	if !ok || claims.GameID != id.String() {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, ErrNotYourGame)
		return nil, false
	}
	return s, true
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	dto, move, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	var update mines.Update
	err = s.Do(func(b *mines.Board) (err error) {
		switch move {
		case Reveal:
			update, err = b.Reveal(dto.Row, dto.Col)
		case Secondary:
			update, err = b.SecondaryAction(dto.Row, dto.Col)
		}
		return
	})
	if err != nil {
		SendErrorOrLog(w, g.logger, engineStatus(err), err)
		return
	}

	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()).WithUpdate(update))
}

func (g GameHandler) Discard(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	if err := g.store.Delete(s.ID); err != nil {
		// lost a race with another delete or the sweeper
		SendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
