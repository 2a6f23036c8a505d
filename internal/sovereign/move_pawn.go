package sovereign

// pawnRule describes how a pawn in one quadrant heads for the center. Attacks are
// named from the pawn's point of view as it travels toward the middle.
type pawnRule struct {
	endFile File // a sideways step from this file would leave the quadrant
	endRank Rank // a forward step from this rank would leave the quadrant

	// Ranks/files a pawn lands on after one step from its first or second ring;
	// from there it may take a second step.
	ringRanks [2]Rank
	ringFiles [2]File

	forward  int
	sideways int

	leftEdgeFile  File
	leftEdgeRank  Rank
	rightEdgeFile File
	rightEdgeRank Rank

	attackLeft   int
	attackCenter int
	attackRight  int
}

var pawnRules = [numQuadrants]pawnRule{
	SouthWest: {
		endFile: FileH, endRank: Rank8,
		ringRanks: [2]Rank{Rank2, Rank3}, ringFiles: [2]File{FileB, FileC},
		forward: BoardWidth, sideways: 1,
		leftEdgeFile: FileA, leftEdgeRank: Rank8,
		rightEdgeFile: FileH, rightEdgeRank: Rank1,
		attackLeft: BoardWidth - 1, attackCenter: BoardWidth + 1, attackRight: -(BoardWidth - 1),
	},
	SouthEast: {
		endFile: FileI, endRank: Rank8,
		ringRanks: [2]Rank{Rank2, Rank3}, ringFiles: [2]File{FileO, FileN},
		forward: BoardWidth, sideways: -1,
		leftEdgeFile: FileI, leftEdgeRank: Rank1,
		rightEdgeFile: FileP, rightEdgeRank: Rank8,
		attackLeft: -(BoardWidth + 1), attackCenter: BoardWidth - 1, attackRight: BoardWidth + 1,
	},
	NorthWest: {
		endFile: FileH, endRank: Rank9,
		ringRanks: [2]Rank{Rank15, Rank14}, ringFiles: [2]File{FileB, FileC},
		forward: -BoardWidth, sideways: 1,
		leftEdgeFile: FileH, leftEdgeRank: Rank16,
		rightEdgeFile: FileA, rightEdgeRank: Rank9,
		attackLeft: BoardWidth + 1, attackCenter: -(BoardWidth - 1), attackRight: -(BoardWidth + 1),
	},
	NorthEast: {
		endFile: FileI, endRank: Rank9,
		ringRanks: [2]Rank{Rank15, Rank14}, ringFiles: [2]File{FileO, FileN},
		forward: -BoardWidth, sideways: -1,
		leftEdgeFile: FileP, leftEdgeRank: Rank9,
		rightEdgeFile: FileI, rightEdgeRank: Rank16,
		attackLeft: -(BoardWidth - 1), attackCenter: -(BoardWidth + 1), attackRight: BoardWidth - 1,
	},
}

// PawnMoves returns pushes, side steps and captures for a pawn on from. all is
// every occupied square; captures land only on enemy squares.
func PawnMoves(from, all, enemy Bitboard, t *Tables) Bitboard {
	sq := from.LowestSquare()
	if sq == NoSquare {
		return EmptyBB
	}
	return pawnRules[sq.Quadrant()].moves(from, all, enemy, t)
}

func (r *pawnRule) moves(from, all, enemy Bitboard, t *Tables) Bitboard {
	empty := all.Not()

	oneStep := from.And(t.ClearRank[r.endRank]).Shift(r.forward).And(empty)
	moves := oneStep
	for _, ring := range r.ringRanks {
		moves = moves.Or(oneStep.And(t.MaskRank[ring]).Shift(r.forward).And(empty))
	}

	sideStep := from.And(t.ClearFile[r.endFile]).Shift(r.sideways).And(empty)
	moves = moves.Or(sideStep)
	for _, ring := range r.ringFiles {
		moves = moves.Or(sideStep.And(t.MaskFile[ring]).Shift(r.sideways).And(empty))
	}

	left := from.And(t.ClearFile[r.leftEdgeFile]).And(t.ClearRank[r.leftEdgeRank]).Shift(r.attackLeft)
	center := from.Shift(r.attackCenter)
	right := from.And(t.ClearFile[r.rightEdgeFile]).And(t.ClearRank[r.rightEdgeRank]).Shift(r.attackRight)

	return moves.Or(left.Or(center).Or(right).And(enemy))
}
