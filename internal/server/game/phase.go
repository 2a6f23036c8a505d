package game

import (
	"fmt"
	"time"

	"github.com/20twoes/sochess-ws/internal/sovereign"
)

// Phase is where a game stands in the opening ritual.
type Phase int

const (
	Created    Phase = iota // waiting for the second player
	Accepted                // both seats filled, opening move pending
	FirstMove               // opening move played, second player to accept or reject it
	InProgress              // ownership settled, regular moves and defections
)

var phaseNames = [...]string{"created", "accepted", "first_move", "in_progress"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Event is one of Join, PlayFirstMove, ChooseFirstMove, PlayMove or Defect.
type Event interface {
	eventName() string
}

type Join struct {
	Name  string
	Token string // issued by the manager
}

type PlayFirstMove struct {
	Token string
	SAN   string
}

type ChooseFirstMove struct {
	Token  string
	Choice string // sovereign.ChoiceAccept or sovereign.ChoiceReject
}

type PlayMove struct {
	Token string
	SAN   string
}

type Defect struct {
	Token string
	Color sovereign.Color
}

func (Join) eventName() string            { return "join" }
func (PlayFirstMove) eventName() string   { return "first_move" }
func (ChooseFirstMove) eventName() string { return "first_move_choice" }
func (PlayMove) eventName() string        { return "move" }
func (Defect) eventName() string          { return "defect" }

// apply runs ev against g. Every handler validates before touching the game,
// so a returned error leaves g as it was.
func (g *Game) apply(ev Event, now time.Time) error {
	switch g.Phase {
	case Created:
		if e, ok := ev.(Join); ok {
			return g.join(e, now)
		}
	case Accepted:
		if e, ok := ev.(PlayFirstMove); ok {
			return g.playFirstMove(e, now)
		}
	case FirstMove:
		if e, ok := ev.(ChooseFirstMove); ok {
			return g.chooseFirstMove(e, now)
		}
	case InProgress:
		switch e := ev.(type) {
		case PlayMove:
			return g.playMove(e, now)
		case Defect:
			return g.defect(e, now)
		}
	}
	return fmt.Errorf("%w: %s during %s", ErrWrongPhase, ev.eventName(), g.Phase)
}

func (g *Game) join(e Join, now time.Time) error {
	if g.Seats[1].Token != "" {
		return ErrSeatTaken
	}
	g.Seats[1] = Seat{Name: e.Name, Token: e.Token}
	g.Phase = Accepted
	g.UpdatedAt = now
	return nil
}

func (g *Game) playFirstMove(e PlayFirstMove, now time.Time) error {
	if err := g.checkTurn(e.Token); err != nil {
		return err
	}
	m, err := sovereign.ParseMove(e.SAN)
	if err != nil {
		return err
	}
	if err := g.Position.PlayMove(m); err != nil {
		return err
	}
	g.record(m.String(), now)
	g.Phase = FirstMove
	return nil
}

func (g *Game) chooseFirstMove(e ChooseFirstMove, now time.Time) error {
	if err := g.checkTurn(e.Token); err != nil {
		return err
	}
	if err := g.Position.ResolveFirstMove(e.Choice); err != nil {
		return err
	}
	g.record(e.Choice, now)
	g.Phase = InProgress
	return nil
}

func (g *Game) playMove(e PlayMove, now time.Time) error {
	if err := g.checkTurn(e.Token); err != nil {
		return err
	}
	m, err := sovereign.ParseMove(e.SAN)
	if err != nil {
		return err
	}
	if err := g.Position.PlayMove(m); err != nil {
		return err
	}
	g.record(m.String(), now)
	return nil
}

func (g *Game) defect(e Defect, now time.Time) error {
	if err := g.checkTurn(e.Token); err != nil {
		return err
	}
	if err := g.Position.DefectTo(e.Color); err != nil {
		return err
	}
	g.record("defect "+string(e.Color.Char()), now)
	return nil
}
