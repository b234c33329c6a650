// Package session keeps the boards of games in progress in memory. Nothing
// outlives the process.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	rnd      *rand.Rand
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// Creates a new [Store]. rnd seeds the mine layout of every board created by
// the store; sessions untouched for longer than ttl are dropped by [Store.Sweep].
func NewStore(logger *slog.Logger, rnd *rand.Rand, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		rnd:      rnd,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Store) Create(rows, cols, mineCount int) (*Session, error) {
	if err := mines.ValidateParams(rows, cols, mineCount); err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("unable to generate session id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := mines.New(rows, cols, mineCount,
		mines.WithRand(rand.New(rand.NewPCG(s.rnd.Uint64(), s.rnd.Uint64()))),
		mines.WithLogger(s.logger.With(slog.String("session", id.String()))),
	)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &Session{
		ID:        id,
		CreatedAt: now,
		board:     board,
		updatedAt: now,
		now:       s.now,
	}
	s.sessions[id] = session

	s.logger.Debug("created game session",
		slog.String("session", id.String()),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
		slog.Int("mines", mineCount),
	)
	return session, nil
}

// Retrieve a session. If id is unknown, [ErrNotFound] is returned.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Discards a session. Discarding an unknown id returns [ErrNotFound].
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops every session that has not been touched since now - ttl and
// reports how many were dropped.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, session := range s.sessions {
		if now.Sub(session.lastActive()) > s.ttl {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps the store every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.logger.Info("dropped idle game sessions",
					slog.Int("dropped", n), slog.Int("live", s.Len()))
			}
		}
	}
}
