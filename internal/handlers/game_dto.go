package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// NewGameDTO describes a board either by preset name or by its numbers.
// Row and Col, when both present, are revealed right after creation.
type NewGameDTO struct {
	Preset string `schema:"preset"`
	Rows   int    `schema:"rows"`
	Cols   int    `schema:"cols"`
	Mines  int    `schema:"mines"`
	Row    *int   `schema:"row"`
	Col    *int   `schema:"col"`
}

func ParseNewGameDTO(src url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return NewGameDTO{}, err
	}
	if dto.Preset != "" {
		preset, err := config.LookupPreset(dto.Preset)
		if err != nil {
			return NewGameDTO{}, err
		}
		dto.Rows, dto.Cols, dto.Mines = preset.Rows, preset.Cols, preset.Mines
	}
	if (dto.Row == nil) != (dto.Col == nil) {
		return NewGameDTO{}, fmt.Errorf("row and col must be given together")
	}
	return dto, nil
}

type GameMove uint8

const (
	Reveal GameMove = iota
	Secondary
)

var gameMoves = map[string]GameMove{
	"reveal":    Reveal,
	"open":      Reveal,
	"secondary": Secondary,
	"flag":      Secondary,
	"chord":     Secondary,
}

func ParseGameMove(s string) (GameMove, error) {
	move, ok := gameMoves[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("move must be one of 'reveal', 'secondary'")
	}
	return move, nil
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

func ParseMoveDTO(src url.Values) (MoveDTO, GameMove, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return MoveDTO{}, 0, err
	}
	move, err := ParseGameMove(dto.Move)
	if err != nil {
		return MoveDTO{}, 0, err
	}
	return dto, move, nil
}

type GameSessionDTO struct {
	GameSessionID  string         `json:"game_session_id"`
	Token          string         `json:"token,omitempty"`
	Rows           int            `json:"rows"`
	Cols           int            `json:"cols"`
	MineCount      int            `json:"mine_count"`
	MinesRemaining int            `json:"mines_remaining"`
	Outcome        mines.Outcome  `json:"outcome"`
	Grid           mines.Grid     `json:"grid"`
	Changes        []mines.Change `json:"changes,omitempty"`
	StartedAt      int64          `json:"started_at"`
	EndedAt        *int64         `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(snap session.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if snap.EndedAt != nil {
		e := snap.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionID:  snap.ID.String(),
		Rows:           snap.Rows,
		Cols:           snap.Cols,
		MineCount:      snap.MineCount,
		MinesRemaining: snap.MinesRemaining,
		Outcome:        snap.Outcome,
		Grid:           snap.Grid,
		StartedAt:      snap.CreatedAt.UnixMilli(),
		EndedAt:        endedAt,
	}
}

// WithUpdate attaches the cells changed by the last request. Outcome and
// the estimate already come from the snapshot.
func (dto *GameSessionDTO) WithUpdate(u mines.Update) *GameSessionDTO {
	dto.Changes = u.Changes
	return dto
}
