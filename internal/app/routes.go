package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/handlers"
)

func (a *App) loadRoutes() {
	router := a.router
	if a.cfg.BasePath != "" {
		router = a.router.PathPrefix(a.cfg.BasePath).Subrouter()
	}

	router.HandleFunc("/status", handlers.Status).Methods(http.MethodGet)

	game := handlers.NewGameHandler(
		a.logger, a.store, a.tokens, a.ws, a.cfg.MaxCells,
	)

	router.HandleFunc("/game", game.NewGame).Methods(http.MethodPost)
	router.HandleFunc("/game/{id}", game.Fetch).Methods(http.MethodGet)
	router.HandleFunc("/game/{id}", game.Discard).Methods(http.MethodDelete)
	router.HandleFunc("/game/{id}/move", game.MakeAMove).Methods(http.MethodPost)
	router.HandleFunc("/game/{id}/connect", game.ConnectWS).Methods(http.MethodGet)
}
