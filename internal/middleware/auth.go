package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

type CtxKey int

const (
	CtxGameClaims CtxKey = iota
)

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if ok {
			return strings.TrimSpace(token)
		}
	}
	// browsers cannot set headers on websocket upgrades
	return r.URL.Query().Get("token")
}

// Auth puts the claims of a valid game token into the request context.
// Requests without a valid token pass through untouched; handlers decide
// whether they need one.
func Auth(logger *slog.Logger, tokens *config.Tokens) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.Parse(token)
			if err != nil {
				logger.Debug("rejected game token", slog.Any("error", err))
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxGameClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GameClaims(ctx context.Context) (*config.GameClaims, bool) {
	claims, ok := ctx.Value(CtxGameClaims).(*config.GameClaims)
	return claims, ok
}
