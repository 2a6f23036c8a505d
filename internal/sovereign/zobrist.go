package sovereign

import "sync"

var (
	zobristOnce sync.Once

	zobristPieces     [NumColors][numRoles][NumSquares]uint64
	zobristPlayer2    uint64
	zobristOwned      [2][NumColors]uint64
	zobristControlled [2][NumColors]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := 0; c < NumColors; c++ {
			for r := int(Pawn); r < numRoles; r++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[c][r][sq] = next()
				}
			}
		}
		zobristPlayer2 = next()
		for pl := 0; pl < 2; pl++ {
			for c := 0; c < NumColors; c++ {
				zobristOwned[pl][c] = next()
				zobristControlled[pl][c] = next()
			}
		}
	})
}

func pieceHashKey(p Piece, sq Square) uint64 {
	if p.IsNone() || !p.Color.Valid() || !sq.Valid() {
		return 0
	}
	initZobrist()
	return zobristPieces[p.Color][p.Role][sq]
}

// CalculateHash recomputes the board hash from scratch.
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		h ^= pieceHashKey(b.squares[sq], sq)
	}
	return h
}

// ownershipHash covers the non-board part of a position.
func (p *Position) ownershipHash() uint64 {
	initZobrist()
	var h uint64
	if p.active == Player2 {
		h ^= zobristPlayer2
	}
	for pl := 0; pl < 2; pl++ {
		if c := p.owned[pl]; c.Valid() {
			h ^= zobristOwned[pl][c]
		}
		for _, c := range p.controlled[pl].Colors() {
			h ^= zobristControlled[pl][c]
		}
	}
	return h
}

// Hash identifies the position: placement, side to move and army ownership.
// The placement part is maintained incrementally by the board.
func (p *Position) Hash() uint64 {
	return p.board.Hash() ^ p.ownershipHash()
}

// CalculateHash recomputes Hash without the board's running value.
func (p *Position) CalculateHash() uint64 {
	return p.board.CalculateHash() ^ p.ownershipHash()
}
