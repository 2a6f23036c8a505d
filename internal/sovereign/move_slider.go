package sovereign

var (
	rookDirs   = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
)

// BishopMoves walks the four diagonals from the lowest square of from.
func BishopMoves(from, own, enemy Bitboard, t *Tables) Bitboard {
	return slide(from, own, enemy, t, bishopDirs)
}

// RookMoves walks the four orthogonals from the lowest square of from.
func RookMoves(from, own, enemy Bitboard, t *Tables) Bitboard {
	return slide(from, own, enemy, t, rookDirs)
}

func QueenMoves(from, own, enemy Bitboard, t *Tables) Bitboard {
	return RookMoves(from, own, enemy, t).Or(BishopMoves(from, own, enemy, t))
}

// slide casts one ray per direction: an own piece stops the ray before its
// square, an enemy piece stops it on its square.
func slide(from, own, enemy Bitboard, t *Tables, dirs [4][2]int) Bitboard {
	start := from.LowestSquare()
	if start == NoSquare {
		return EmptyBB
	}
	file, rank := int(start.File()), int(start.Rank())

	var moves Bitboard
	for _, d := range dirs {
		limit := min(stepsToEdge(file, d[0]), stepsToEdge(rank, d[1]), t.MaxRange)
		f, r := file, rank
		for i := 0; i < limit; i++ {
			f += d[0]
			r += d[1]
			idx := r*BoardWidth + f
			if own.Get(idx) {
				break
			}
			moves.Set(idx, true)
			if enemy.Get(idx) {
				break
			}
		}
	}
	return moves
}

func stepsToEdge(pos, dir int) int {
	switch {
	case dir > 0:
		return BoardWidth - 1 - pos
	case dir < 0:
		return pos
	}
	return BoardWidth
}
