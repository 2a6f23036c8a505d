package httpserver

import (
	"time"

	"github.com/20twoes/sochess-ws/internal/server/game"
)

type NewGameRequest struct {
	Name string `json:"name"`
}

// SeatResponse is returned to a player who just took a seat. The token must
// accompany every later action of that player.
type SeatResponse struct {
	GameID string        `json:"game_id"`
	Token  string        `json:"token"`
	Seat   int           `json:"seat"`
	State  StateResponse `json:"state"`
}

type JoinRequest struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

// MoveRequest serves both the opening move and regular moves.
type MoveRequest struct {
	GameID string `json:"game_id"`
	Token  string `json:"token"`
	SAN    string `json:"san"`
}

type ChoiceRequest struct {
	GameID string `json:"game_id"`
	Token  string `json:"token"`
	Choice string `json:"choice"` // "accept" or "reject"
}

type DefectRequest struct {
	GameID string `json:"game_id"`
	Token  string `json:"token"`
	Color  string `json:"color"` // code ("N") or name ("navy")
}

type StateRequest struct {
	GameID string `json:"game_id"`
}

type PlayerDTO struct {
	Name       string `json:"name"`
	Owned      string `json:"owned"`      // color code or "-"
	Controlled string `json:"controlled"` // sorted color codes or "-"
}

type StateResponse struct {
	GameID     string        `json:"game_id"`
	Phase      string        `json:"phase"`
	Position   string        `json:"position"` // FEN
	ToMove     int           `json:"to_move"`  // 1 or 2
	Players    [2]PlayerDTO  `json:"players"`
	LegalMoves []string      `json:"legal_moves"`
	Moves      []game.Record `json:"moves"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type GamesResponse struct {
	Games []string `json:"games"`
}

func stateFromSnapshot(s game.Snapshot) StateResponse {
	resp := StateResponse{
		GameID:     s.ID,
		Phase:      s.Phase.String(),
		Position:   s.FEN,
		ToMove:     int(s.Active),
		LegalMoves: s.Legal,
		Moves:      s.Moves,
		UpdatedAt:  s.UpdatedAt,
	}
	if resp.LegalMoves == nil {
		resp.LegalMoves = []string{}
	}
	for i := range resp.Players {
		resp.Players[i] = PlayerDTO{
			Name:       s.Players[i],
			Owned:      string(s.Owned[i].Char()),
			Controlled: s.Controlled[i].Codes(),
		}
	}
	return resp
}
