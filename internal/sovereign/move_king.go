package sovereign

// KingMoves returns the squares a king on from can reach, excluding own pieces.
//
//	+15 +16 +17
//	 -1  K   +1
//	-17 -16 -15
func KingMoves(from, own Bitboard, t *Tables) Bitboard {
	notA := from.And(t.ClearFile[FileA])
	notP := from.And(t.ClearFile[FileP])

	moves := notA.ShiftHigh(BoardWidth - 1).
		Or(from.ShiftHigh(BoardWidth)).
		Or(notP.ShiftHigh(BoardWidth + 1)).
		Or(notP.ShiftHigh(1)).
		Or(notP.ShiftLow(BoardWidth - 1)).
		Or(from.ShiftLow(BoardWidth)).
		Or(notA.ShiftLow(BoardWidth + 1)).
		Or(notA.ShiftLow(1))

	return moves.AndNot(own)
}
