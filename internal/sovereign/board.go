package sovereign

import (
	"fmt"
	"strings"
)

// Board is the physical placement of pieces, independent of who owns which army.
// The square array, the per-piece and per-color bitboards and the occupancy union
// are kept mutually consistent by InsertPiece and the Remove methods.
type Board struct {
	tables *Tables

	squares [NumSquares]Piece
	byPiece map[Piece]Bitboard
	byColor [NumColors]Bitboard
	all     Bitboard

	// armies with at least one piece standing on one of their colored squares
	occupiedColored ColorSet

	hash uint64
}

// NewBoard returns an empty board. A nil t selects DefaultTables.
func NewBoard(t *Tables) *Board {
	if t == nil {
		t = DefaultTables()
	}
	return &Board{
		tables:  t,
		byPiece: make(map[Piece]Bitboard),
	}
}

func (b *Board) Tables() *Tables { return b.tables }

// InsertPiece places p on sq. Inserting onto an occupied square is a caller bug.
func (b *Board) InsertPiece(sq Square, p Piece) {
	if !sq.Valid() || p.IsNone() || !p.Color.Valid() {
		panic(fmt.Sprintf("sovereign: insert %v on %v", p, sq))
	}
	if !b.squares[sq].IsNone() {
		panic(fmt.Sprintf("sovereign: insert %v on occupied square %v (holds %v)", p, sq, b.squares[sq]))
	}
	b.squares[sq] = p
	b.byPiece[p] = b.byPiece[p].With(sq)
	b.byColor[p.Color] = b.byColor[p.Color].With(sq)
	b.all = b.all.With(sq)
	if c := sq.Color(); c != NoColor {
		b.occupiedColored = b.occupiedColored.Add(c)
	}
	b.hash ^= pieceHashKey(p, sq)
}

// RemoveAt clears sq and returns what stood there.
func (b *Board) RemoveAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b.squares[sq]
	if p.IsNone() {
		return Piece{}, false
	}
	b.squares[sq] = Piece{}
	if rest := b.byPiece[p].Without(sq); rest.Any() {
		b.byPiece[p] = rest
	} else {
		delete(b.byPiece, p)
	}
	b.byColor[p.Color] = b.byColor[p.Color].Without(sq)
	b.all = b.all.Without(sq)
	if c := sq.Color(); c != NoColor {
		pair := ColoredSquares(c)
		if !b.all.Has(pair[0]) && !b.all.Has(pair[1]) {
			b.occupiedColored = b.occupiedColored.Remove(c)
		}
	}
	b.hash ^= pieceHashKey(p, sq)
	return p, true
}

// RemovePiece takes p off the board and returns the square it stood on. When p
// occupies several squares the lowest one is cleared. Removing a piece that is
// not on the board means the caller's view of the board is out of sync and panics.
func (b *Board) RemovePiece(p Piece) Square {
	sq, ok := b.Find(p)
	if !ok {
		panic(fmt.Sprintf("sovereign: remove %v: piece not on board", p))
	}
	b.RemoveAt(sq)
	return sq
}

// Find returns the lowest square holding p.
func (b *Board) Find(p Piece) (Square, bool) {
	sq := b.byPiece[p].LowestSquare()
	return sq, sq != NoSquare
}

func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b.squares[sq]
}

func (b *Board) ByPiece(p Piece) Bitboard { return b.byPiece[p] }

func (b *Board) ByColor(c Color) Bitboard {
	if !c.Valid() {
		return EmptyBB
	}
	return b.byColor[c]
}

func (b *Board) AllPieces() Bitboard { return b.all }

func (b *Board) OccupiedColoredSquares() ColorSet { return b.occupiedColored }

func (b *Board) Hash() uint64 { return b.hash }

// Occupancy is the union of the given armies' squares.
func (b *Board) Occupancy(cs ColorSet) Bitboard {
	var bb Bitboard
	for _, c := range cs.Colors() {
		bb = bb.Or(b.byColor[c])
	}
	return bb
}

// BuildColoredSquaresMask returns every square a piece may land on as far as the
// colored-square pairing goes: both squares of an occupied pair are closed, except
// that enemy-held squares stay open for capture.
func (b *Board) BuildColoredSquaresMask(enemy Bitboard) Bitboard {
	mask := FullBB
	for _, c := range b.occupiedColored.Colors() {
		mask = mask.And(b.tables.ClearColoredSquares[c])
	}
	return mask.Or(enemy)
}

// Destinations returns the legal landing squares for the piece on from, given
// which armies count as the mover's side and which as the enemy.
func (b *Board) Destinations(from Square, own, enemy ColorSet) Bitboard {
	p := b.PieceAt(from)
	if p.IsNone() {
		return EmptyBB
	}
	t := b.tables
	start := SquareBB(from)
	ownBB := b.Occupancy(own)
	enemyBB := b.Occupancy(enemy)

	var moves Bitboard
	switch p.Role {
	case Pawn:
		moves = PawnMoves(start, b.all, enemyBB, t)
	case Knight:
		moves = KnightMoves(start, ownBB, t)
	case Bishop:
		moves = BishopMoves(start, ownBB, enemyBB, t)
	case Rook:
		moves = RookMoves(start, ownBB, enemyBB, t)
	case Queen:
		moves = QueenMoves(start, ownBB, enemyBB, t)
	case King:
		moves = KingMoves(start, ownBB, t)
	}

	moves = moves.And(b.BuildColoredSquaresMask(enemyBB))
	return moves.And(t.ClearColoredSquares[p.Color])
}

// IsLegalMove reports whether m may be played. The moving piece must be on
// m.From; anything else is a desynchronized caller and panics.
func (b *Board) IsLegalMove(m Move, own, enemy ColorSet) bool {
	if got := b.PieceAt(m.From); got != m.Piece() {
		panic(fmt.Sprintf("sovereign: move %v: %v not on %v (found %v)", m, m.Piece(), m.From, got))
	}
	return b.Destinations(m.From, own, enemy).Has(m.To)
}

func (b *Board) Clone() *Board {
	nb := *b
	nb.byPiece = make(map[Piece]Bitboard, len(b.byPiece))
	for p, bb := range b.byPiece {
		nb.byPiece[p] = bb
	}
	return &nb
}

// Equal compares placement only.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.squares == o.squares
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := BoardWidth - 1; r >= 0; r-- {
		fmt.Fprintf(&sb, "%2d ", r+1)
		for f := 0; f < BoardWidth; f++ {
			sb.WriteString(b.squares[r*BoardWidth+f].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for f := File(0); f < BoardWidth; f++ {
		sb.WriteByte(f.Char())
		sb.WriteString("  ")
	}
	sb.WriteByte('\n')
	return sb.String()
}
