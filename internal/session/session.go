package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Session owns one board. All access to the board goes through the
// session's mutex, so concurrent requests for the same game are applied one
// at a time.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	board     *mines.Board
	updatedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

type Snapshot struct {
	ID             uuid.UUID
	Rows           int
	Cols           int
	MineCount      int
	MinesRemaining int
	Outcome        mines.Outcome
	Grid           mines.Grid
	CreatedAt      time.Time
	UpdatedAt      time.Time
	EndedAt        *time.Time
}

// Do runs fn with exclusive access to the board.
func (s *Session) Do(fn func(*mines.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.board)
	now := s.now().UTC()
	s.updatedAt = now
	if s.board.IsGameOver() && s.endedAt.IsZero() {
		s.endedAt = now
	}
	return err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:             s.ID,
		Rows:           s.board.Rows(),
		Cols:           s.board.Cols(),
		MineCount:      s.board.MineTotal(),
		MinesRemaining: s.board.MinesRemaining(),
		Outcome:        s.board.Outcome(),
		Grid:           s.board.Grid(),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.updatedAt,
	}
	if !s.endedAt.IsZero() {
		endedAt := s.endedAt
		snap.EndedAt = &endedAt
	}
	return snap
}

func (s *Session) lastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
