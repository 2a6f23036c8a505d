package sovereign

// InitialFEN is the starting layout: no army owned yet, player 1 to move.
const InitialFEN = "aqabvrvnbrbnbbbqbkbbbnbrynyrsbsq/aranvpvpbpbpbpbpbpbpbpbpypypsnsr/nbnp12opob/nqnp12opoq/crcp12rprr/cncp12rprn/gbgp12pppb/gqgp12pppq/yqyp12vpvq/ybyp12vpvb/onop12npnn/orop12npnr/rqrp12cpcq/rbrp12cpcb/srsnppppwpwpwpwpwpwpwpwpgpgpanar/sqsbprpnwrwnwbwqwkwbwnwrgngrabaq 1 - - - - 0"

// FirstMoveColor is the army the opening move must use while ownership is undecided.
const FirstMoveColor = White

// Choices offered to the second player after the opening move.
const (
	ChoiceAccept = "accept"
	ChoiceReject = "reject"
)

// Position is the full game state: placement plus which player owns and
// controls which armies. A Position is not safe for concurrent use.
type Position struct {
	board      *Board
	active     Player
	owned      [2]Color
	controlled [2]ColorSet
	ply        uint32
}

func newPosition(b *Board) *Position {
	return &Position{
		board:  b,
		active: Player1,
		owned:  [2]Color{NoColor, NoColor},
	}
}

// NewInitialPosition returns the starting position on the default tables.
func NewInitialPosition() *Position {
	return NewInitialPositionWithTables(nil)
}

func NewInitialPositionWithTables(t *Tables) *Position {
	p, err := DecodePositionWithTables(InitialFEN, t)
	if err != nil {
		panic("sovereign: initial FEN does not parse: " + err.Error())
	}
	return p
}

func (p *Position) Board() *Board { return p.board }

// ActivePlayer is the player to move, 1 or 2.
func (p *Position) ActivePlayer() Player { return p.active }

// Owned returns the army pl owns, or NoColor before the opening is resolved.
func (p *Position) Owned(pl Player) Color {
	if pl != Player1 && pl != Player2 {
		return NoColor
	}
	return p.owned[pl.idx()]
}

func (p *Position) Controlled(pl Player) ColorSet {
	if pl != Player1 && pl != Player2 {
		return 0
	}
	return p.controlled[pl.idx()]
}

func (p *Position) Ply() uint32 { return p.ply }

// Claimed is every army pl owns or controls.
func (p *Position) Claimed(pl Player) ColorSet {
	return p.Controlled(pl).Add(p.Owned(pl))
}

// Movable lists the armies the active player may move this turn.
func (p *Position) Movable() ColorSet {
	if !p.owned[p.active.idx()].Valid() {
		return ColorSetOf(FirstMoveColor)
	}
	return p.Claimed(p.active)
}

// sides splits the armies for the active player: enemy is whatever the opponent
// owns or controls, own is everything else, neutral armies included.
func (p *Position) sides() (own, enemy ColorSet) {
	enemy = p.Claimed(p.active.Other())
	return enemy.Complement(), enemy
}

func (p *Position) checkMove(m Move) error {
	me := p.active.idx()
	if m.Promotion != NoRole && (m.Promotion != King || m.Role != Pawn) {
		return ErrUnsupportedPromotion
	}
	if owned := p.owned[me]; !owned.Valid() {
		if m.Color != FirstMoveColor {
			return ErrFirstMoveNotWhite
		}
	} else if m.Color != owned && !p.controlled[me].Has(m.Color) {
		return ErrNotYourArmy
	}
	if !m.From.Valid() || !m.To.Valid() || p.board.PieceAt(m.From) != m.Piece() {
		return ErrPieceNotFound
	}
	if m.Promotion == King {
		owned := p.owned[me]
		if !owned.Valid() {
			return ErrNoOwnedArmy
		}
		if _, ok := p.board.Find(NewPiece(owned, King)); !ok {
			return ErrKingMissing
		}
	}
	own, enemy := p.sides()
	if !p.board.IsLegalMove(m, own, enemy) {
		return ErrIllegalDestination
	}
	return nil
}

// PlayMove validates m for the active player and applies it. On error the
// position is left untouched and the error is a *PlayError.
func (p *Position) PlayMove(m Move) error {
	if err := p.checkMove(m); err != nil {
		return playErr(m.String(), err)
	}
	p.applyMove(m)
	return nil
}

// PlayMoveString parses a move token and plays it.
func (p *Position) PlayMoveString(token string) (Move, error) {
	m, err := ParseMove(token)
	if err != nil {
		return Move{}, err
	}
	return m, p.PlayMove(m)
}

func (p *Position) applyMove(m Move) {
	me := p.active.idx()

	p.board.RemoveAt(m.To)
	p.board.RemoveAt(m.From)

	role := m.Role
	if m.Promotion == King {
		p.board.RemovePiece(NewPiece(p.owned[me], King))
		p.owned[me] = m.Color
		p.controlled[me] = p.controlled[me].Remove(m.Color)
		role = King
	}
	p.board.InsertPiece(m.To, NewPiece(m.Color, role))

	p.updateControl(m)

	p.active = p.active.Other()
	p.ply++
}

// updateControl moves army control for the player who just moved. Leaving a
// colored square gives its army up; landing on one claims it unless the
// opponent owns that army.
func (p *Position) updateControl(m Move) {
	me, opp := p.active.idx(), p.active.Other().idx()
	if c := m.From.Color(); c != NoColor {
		p.controlled[me] = p.controlled[me].Remove(c)
	}
	if c := m.To.Color(); c != NoColor && c != p.owned[opp] {
		if c != p.owned[me] {
			p.controlled[me] = p.controlled[me].Add(c)
		}
		p.controlled[opp] = p.controlled[opp].Remove(c)
	}
}

// DefectTo makes a controlled army the active player's owned army. The king
// changes color in place, and the turn passes without advancing the ply.
func (p *Position) DefectTo(c Color) error {
	action := "defect " + string(c.Char())
	me := p.active.idx()
	if !p.controlled[me].Has(c) {
		return playErr(action, ErrNotControlled)
	}
	owned := p.owned[me]
	if !owned.Valid() {
		return playErr(action, ErrNoOwnedArmy)
	}
	king := NewPiece(owned, King)
	if _, ok := p.board.Find(king); !ok {
		return playErr(action, ErrKingMissing)
	}

	sq := p.board.RemovePiece(king)
	p.board.InsertPiece(sq, NewPiece(c, King))
	p.controlled[me] = p.controlled[me].Remove(c)
	p.owned[me] = c

	p.active = p.active.Other()
	return nil
}

// AcceptFirstMove keeps the opening: player 2 takes White and player 1 answers
// with Black.
func (p *Position) AcceptFirstMove() error {
	if err := p.checkUnresolved(ChoiceAccept); err != nil {
		return err
	}
	p.owned = [2]Color{Black, White}
	p.active = Player1
	return nil
}

// RejectFirstMove hands White to player 1, whose opening move stands, and
// player 2 continues with Black.
func (p *Position) RejectFirstMove() error {
	if err := p.checkUnresolved(ChoiceReject); err != nil {
		return err
	}
	p.owned = [2]Color{White, Black}
	p.active = Player2
	return nil
}

// ResolveFirstMove dispatches on a choice token, "accept" or "reject".
func (p *Position) ResolveFirstMove(choice string) error {
	switch choice {
	case ChoiceAccept:
		return p.AcceptFirstMove()
	case ChoiceReject:
		return p.RejectFirstMove()
	}
	return playErr(choice, ErrInvalidChoice)
}

func (p *Position) checkUnresolved(action string) error {
	if p.owned[0].Valid() || p.owned[1].Valid() {
		return playErr(action, ErrOwnershipResolved)
	}
	return nil
}

// LegalMoves lists every move the active player may make, grouped by army in
// enumeration order, then by origin and destination square. Promotions are not
// enumerated.
func (p *Position) LegalMoves() []Move {
	own, enemy := p.sides()
	var moves []Move
	for _, c := range p.Movable().Colors() {
		froms := p.board.ByColor(c)
		for froms.Any() {
			var from Square
			from, froms = froms.PopLowest()
			piece := p.board.PieceAt(from)
			dests := p.board.Destinations(from, own, enemy)
			for dests.Any() {
				var to Square
				to, dests = dests.PopLowest()
				moves = append(moves, Move{Color: piece.Color, Role: piece.Role, From: from, To: to})
			}
		}
	}
	return moves
}

// DestinationsFrom returns where the piece on from may move if its army is
// the active player's to move. Empty when from holds no such piece.
func (p *Position) DestinationsFrom(from Square) Bitboard {
	pc := p.board.PieceAt(from)
	if pc.IsNone() || !p.Movable().Has(pc.Color) {
		return EmptyBB
	}
	own, enemy := p.sides()
	return p.board.Destinations(from, own, enemy)
}

func (p *Position) Clone() *Position {
	np := *p
	np.board = p.board.Clone()
	return &np
}

func (p *Position) Equal(o *Position) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.active == o.active &&
		p.owned == o.owned &&
		p.controlled == o.controlled &&
		p.ply == o.ply &&
		p.board.Equal(o.board)
}
