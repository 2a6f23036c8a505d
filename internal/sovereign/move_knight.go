package sovereign

// knightJumps pairs each L-shaped offset with the files a knight must not stand
// on for the jump to stay on its intended rank.
var knightJumps = [8]struct {
	shift int
	edges []File
}{
	{BoardWidth - 2, []File{FileA, FileB}},
	{2*BoardWidth - 1, []File{FileA}},
	{2*BoardWidth + 1, []File{FileP}},
	{BoardWidth + 2, []File{FileO, FileP}},
	{-(BoardWidth - 2), []File{FileO, FileP}},
	{-(2*BoardWidth - 1), []File{FileP}},
	{-(2*BoardWidth + 1), []File{FileA}},
	{-(BoardWidth + 2), []File{FileA, FileB}},
}

// KnightMoves returns the squares a knight on from can reach, excluding own pieces.
func KnightMoves(from, own Bitboard, t *Tables) Bitboard {
	var moves Bitboard
	for _, j := range knightJumps {
		src := from
		for _, f := range j.edges {
			src = src.And(t.ClearFile[f])
		}
		moves = moves.Or(src.Shift(j.shift))
	}
	return moves.AndNot(own)
}
