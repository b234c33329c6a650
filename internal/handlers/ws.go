package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// ConnectWS plays a game over a websocket. Every text frame holds one or
// more commands; each frame is answered with the session and the cells the
// frame changed, or with an error object.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}

	defer c.Close()

	logger := g.logger.With(slog.String("session", s.ID.String()))
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		logger.Debug(fmt.Sprintf("\t> %s", text))

		var update mines.Update
		err = s.Do(func(b *mines.Board) (err error) {
			update, err = command.Run(b, text)
			return
		})
		if err != nil {
			logger.Debug("unable to process command", slog.Any("error", err))
			if err := c.WriteJSON(wrapError(err)); err != nil {
				logger.Error("unable to write ws message", slog.Any("error", err))
				break
			}
			continue
		}

		if err := c.WriteJSON(NewGameSessionDTO(s.Snapshot()).WithUpdate(update)); err != nil {
			logger.Error("unable to write ws message", slog.Any("error", err))
			break
		}
	}
}
