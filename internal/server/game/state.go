package game

import (
	"time"

	"github.com/20twoes/sochess-ws/internal/sovereign"
)

type Seat struct {
	Name  string
	Token string
}

// Record is one entry of the move list. SAN holds the move token, the first
// move choice or "defect X"; the first record is the starting position.
type Record struct {
	SAN string    `json:"san"`
	FEN string    `json:"fen"`
	Ply uint32    `json:"ply"`
	At  time.Time `json:"at"`
}

// Game is owned by its actor goroutine and never shared.
type Game struct {
	ID        string
	Seats     [2]Seat
	Phase     Phase
	Position  *sovereign.Position
	Moves     []Record
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newGame(id string, host Seat, pos *sovereign.Position, now time.Time) *Game {
	return &Game{
		ID:        id,
		Seats:     [2]Seat{host},
		Phase:     Created,
		Position:  pos,
		Moves:     []Record{{FEN: pos.Encode(), Ply: pos.Ply(), At: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (g *Game) seatOf(token string) (sovereign.Player, error) {
	if token == "" {
		return 0, ErrBadToken
	}
	switch token {
	case g.Seats[0].Token:
		return sovereign.Player1, nil
	case g.Seats[1].Token:
		return sovereign.Player2, nil
	}
	return 0, ErrBadToken
}

func (g *Game) checkTurn(token string) error {
	pl, err := g.seatOf(token)
	if err != nil {
		return err
	}
	if pl != g.Position.ActivePlayer() {
		return ErrNotYourTurn
	}
	return nil
}

func (g *Game) record(san string, now time.Time) {
	g.Moves = append(g.Moves, Record{
		SAN: san,
		FEN: g.Position.Encode(),
		Ply: g.Position.Ply(),
		At:  now,
	})
	g.UpdatedAt = now
}

// Snapshot is a read-only copy of a game, safe to hand to other goroutines.
type Snapshot struct {
	ID         string
	Phase      Phase
	Players    [2]string
	FEN        string
	Active     sovereign.Player
	Owned      [2]sovereign.Color
	Controlled [2]sovereign.ColorSet
	Legal      []string
	Moves      []Record
	Hash       uint64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (g *Game) snapshot() Snapshot {
	pos := g.Position
	s := Snapshot{
		ID:        g.ID,
		Phase:     g.Phase,
		Players:   [2]string{g.Seats[0].Name, g.Seats[1].Name},
		FEN:       pos.Encode(),
		Active:    pos.ActivePlayer(),
		Owned:     [2]sovereign.Color{pos.Owned(sovereign.Player1), pos.Owned(sovereign.Player2)},
		Moves:     append([]Record(nil), g.Moves...),
		Hash:      pos.Hash(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	s.Controlled = [2]sovereign.ColorSet{pos.Controlled(sovereign.Player1), pos.Controlled(sovereign.Player2)}
	if g.Phase == Accepted || g.Phase == InProgress {
		for _, m := range pos.LegalMoves() {
			s.Legal = append(s.Legal, m.String())
		}
	}
	return s
}
