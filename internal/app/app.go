package app

import (
	"context"
	"errors"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type App struct {
	logger *slog.Logger
	cfg    *config.App
	router *mux.Router
	store  *session.Store
	tokens *config.Tokens
	ws     *config.WebSocket
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func New(logger *slog.Logger, cfg *config.App) (*App, error) {
	tokens, err := config.NewTokens(cfg.TokenSecret, cfg.TokenLifetime)
	if err != nil {
		return nil, err
	}

	app := &App{
		logger: logger,
		cfg:    cfg,
		router: mux.NewRouter(),
		store:  session.NewStore(logger, createRand(), cfg.SessionTTL),
		tokens: tokens,
		ws:     config.NewWebSocket(cfg.WSOrigins),
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.logger),
		middleware.Cors(a.cfg.WSOrigins),
		middleware.Auth(a.logger, a.tokens),
	)
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", a.cfg.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return a.store.Run(ctx, a.cfg.SweepInterval)
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		a.logger.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
